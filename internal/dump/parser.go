// Package dump reads table contents out of pg_dump plain-SQL output.
package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"logi-migrate/internal/schema"
)

// Terminator ends the data section of a COPY block.
const Terminator = `\.`

var copyHeader = regexp.MustCompile(`^COPY ([\w.]+) \((.*)\) FROM stdin;`)

// Filter selects the COPY blocks whose rows are collected.
type Filter struct {
	// Include lists short table names (without "public."). Empty means every table.
	Include []string
	// Skip lists qualified table names that are never collected.
	Skip []string
}

func (f Filter) wants(qualified, short string) bool {
	for _, s := range f.Skip {
		if s == qualified {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, n := range f.Include {
		if n == short {
			return true
		}
	}
	return false
}

// ShortName strips the default schema from a qualified table name.
func ShortName(qualified string) string {
	return strings.TrimPrefix(qualified, "public.")
}

// Parse collects the rows of every wanted COPY block, keyed by short table name.
// Rows whose field count differs from the column count are dropped and counted.
func Parse(r io.Reader, f Filter) (map[string]*schema.Table, error) {
	br := bufio.NewReader(r)
	tables := make(map[string]*schema.Table)

	var (
		inCopy  bool
		current *schema.Table
		columns []string
	)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read dump: %w", err)
		}
		eof := err != nil
		if eof && line == "" {
			break
		}
		line = strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "COPY "):
			m := copyHeader.FindStringSubmatch(line)
			if m == nil {
				break
			}
			qualified, short := m[1], ShortName(m[1])
			inCopy = true
			current = nil
			if !f.wants(qualified, short) {
				break
			}

			columns = splitColumns(m[2])
			current = tables[short]
			if current == nil {
				current = &schema.Table{Name: short, Columns: columns}
				tables[short] = current
			}

		case inCopy && line == Terminator:
			inCopy = false
			current = nil

		case inCopy && current != nil:
			fields := strings.Split(line, "\t")
			if len(fields) != len(columns) {
				current.Dropped++
				break
			}
			current.Rows = append(current.Rows, fields)
		}

		if eof {
			break
		}
	}

	return tables, nil
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	cols := make([]string, len(parts))
	for i, p := range parts {
		cols[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return cols
}
