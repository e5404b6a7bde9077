package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pterm/pterm"
)

// Querier is the subset of *sql.DB / *sql.Conn used for introspection.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// TargetColumns returns the column names of table in the target database.
// columnsQuery must take the schema name as $1 and the table name as $2.
func TargetColumns(ctx context.Context, db Querier, columnsQuery, schemaName, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, columnsQuery, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table, err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}

// MissingColumns lists the entries of want that the target does not have, in order.
// An empty target means the table could not be found and every column is reported.
func MissingColumns(want []string, target map[string]bool) []string {
	var missing []string
	for _, c := range want {
		if !target[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// SortTables orders tables so that each one comes after its dependencies.
// Tables that are already in a valid order keep it; cycles are broken with a score.
func SortTables(tables []*TableSpec) []*TableSpec {
	var sorted []*TableSpec
	processed := make(map[string]bool)
	known := make(map[string]*TableSpec, len(tables))
	for _, t := range tables {
		known[t.Name] = t
	}

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: tables whose known dependencies are all placed
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			ready := true
			for _, dep := range t.Dependencies {
				if _, ok := known[dep]; ok && !processed[dep] {
					ready = false
					break
				}
			}

			if ready {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		if added {
			continue
		}

		// Pass 2: cycle. Pick the table with the fewest unplaced dependencies,
		// preferring one that is part of a two-table cycle.
		var best *TableSpec
		bestScore := -999999
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			score := 0
			circular := false
			for _, dep := range t.Dependencies {
				d, ok := known[dep]
				if !ok || processed[dep] {
					continue
				}
				score -= 100
				for _, back := range d.Dependencies {
					if back == t.Name {
						circular = true
					}
				}
			}
			if circular {
				score += 500
			}

			if score > bestScore {
				bestScore = score
				best = t
			}
		}

		sorted = append(sorted, best)
		processed[best.Name] = true
		pterm.Debug.Printfln("[Sort] Breaking circular dependency: %s (Score: %d)", best.Name, bestScore)
	}

	return sorted
}

// Names returns the table names in order.
func Names(tables []*TableSpec) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
