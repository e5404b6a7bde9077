// Package diff finds the rows a newer dump adds on top of an older one.
package diff

import (
	"fmt"
	"strings"

	"logi-migrate/internal/schema"
)

// Key is an ordered list of column indices identifying a row.
type Key []int

// KeyOf resolves column names into a Key.
func KeyOf(columns []string, names ...string) (Key, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("key needs at least one column")
	}
	key := make(Key, len(names))
	for i, name := range names {
		idx := -1
		for j, c := range columns {
			if c == name {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("key column %q not in %v", name, columns)
		}
		key[i] = idx
	}
	return key, nil
}

// project joins the key fields of row. Fields never contain NUL, so the result is
// unambiguous. ok is false when row is too short for the key.
func (k Key) project(row []string) (string, bool) {
	if len(k) == 1 {
		if k[0] >= len(row) {
			return "", false
		}
		return row[k[0]], true
	}
	parts := make([]string, len(k))
	for i, idx := range k {
		if idx >= len(row) {
			return "", false
		}
		parts[i] = row[idx]
	}
	return strings.Join(parts, "\x00"), true
}

// NewRows returns the rows of newer whose key does not occur in older, in the
// order they appear in newer. Both sets share one column layout.
func NewRows(older, newer [][]string, key Key) [][]string {
	return Difference(older, key, newer, key)
}

// Difference is NewRows for snapshots whose column layouts differ.
// Rows too short for their key are skipped.
func Difference(older [][]string, olderKey Key, newer [][]string, newerKey Key) [][]string {
	seen := make(map[string]struct{}, len(older))
	for _, row := range older {
		if k, ok := olderKey.project(row); ok {
			seen[k] = struct{}{}
		}
	}

	var out [][]string
	for _, row := range newer {
		k, ok := newerKey.project(row)
		if !ok {
			continue
		}
		if _, found := seen[k]; !found {
			out = append(out, row)
		}
	}
	return out
}

// NewTableRows diffs two snapshots of one table by the named key columns, resolving
// the key against each snapshot's own columns. A missing older snapshot makes every
// row new; a missing newer snapshot yields nothing.
func NewTableRows(older, newer *schema.Table, names ...string) ([][]string, error) {
	if newer == nil {
		return nil, nil
	}
	newerKey, err := KeyOf(newer.Columns, names...)
	if err != nil {
		return nil, fmt.Errorf("%s (new dump): %w", newer.Name, err)
	}
	if older == nil {
		return newer.Rows, nil
	}
	olderKey, err := KeyOf(older.Columns, names...)
	if err != nil {
		return nil, fmt.Errorf("%s (old dump): %w", older.Name, err)
	}
	return Difference(older.Rows, olderKey, newer.Rows, newerKey), nil
}
