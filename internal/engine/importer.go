package engine

import (
	"context"
	"fmt"
	"strings"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/transform"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
)

const (
	DefaultBatchSize = 50
	maxErrorLen      = 500
)

const (
	StatusOK          = "OK"
	StatusMissingData = "MISSING DATA"
	StatusDryRun      = "DRY RUN"
	StatusNoData      = "NO DATA"
)

// TableJob is one table's worth of rows, already mapped and tenant-augmented.
type TableJob struct {
	Table   string
	Columns []string
	Rows    [][]string
	// PlainValues skips timestamp conversion; every field is written as text.
	PlainValues bool
}

// Result is one line of the import report.
type Result struct {
	TableName string
	Target    int
	Actual    int
	Status    string
	ErrorMsg  string
	// Lossy counts timestamp fields that could not be parsed and were written as NULL.
	Lossy int
}

// Importer writes TableJobs with multi-row conflict-tolerant inserts.
type Importer struct {
	db        DB
	dialect   dialect.Dialect
	batchSize int

	// DryRun renders every statement but executes none.
	DryRun bool
	// OnProgress is called once per executed batch with the batch's row count.
	OnProgress func(rows int)
}

func NewImporter(db DB, d dialect.Dialect, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{db: db, dialect: d, batchSize: batchSize}
}

// Batches returns how many statements Import will issue for n rows.
func (im *Importer) Batches(n int) int {
	return (n + im.batchSize - 1) / im.batchSize
}

// Import inserts job.Rows in batches. A failing batch is skipped and the rest still
// run; only rows of successful batches count as applied.
func (im *Importer) Import(ctx context.Context, job TableJob) (Result, error) {
	res := Result{TableName: job.Table, Target: len(job.Rows), Status: StatusOK}
	if len(job.Rows) == 0 {
		res.Status = StatusNoData
		return res, nil
	}

	tuples, lossy, sample := im.render(job)
	res.Lossy = lossy
	if lossy > 0 {
		pterm.Warning.Printfln("%s: %d timestamp value(s) not understood, written as NULL (e.g. %q)", job.Table, lossy, sample)
	}

	for _, batch := range lo.Chunk(tuples, im.batchSize) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		query := im.dialect.InsertBatchQuery(job.Table, job.Columns, batch)

		if im.DryRun {
			pterm.Debug.Printfln("[dry-run] %s", truncate(query, maxErrorLen))
			res.Actual += len(batch)
		} else if _, err := im.db.ExecContext(ctx, query); err != nil {
			if res.ErrorMsg == "" {
				res.ErrorMsg = truncate(err.Error(), maxErrorLen)
				pterm.Warning.Printfln("%s: batch failed: %s", job.Table, res.ErrorMsg)
			}
		} else {
			res.Actual += len(batch)
		}
		if im.OnProgress != nil {
			im.OnProgress(len(batch))
		}
	}

	switch {
	case im.DryRun:
		res.Status = StatusDryRun
	case res.Actual < res.Target:
		res.Status = StatusMissingData
	}
	return res, nil
}

func (im *Importer) render(job TableJob) (tuples []string, lossy int, sample string) {
	tuples = make([]string, 0, len(job.Rows))
	literals := make([]string, len(job.Columns))
	for _, row := range job.Rows {
		for i, col := range job.Columns {
			raw := transform.NullMarker
			if i < len(row) {
				raw = row[i]
			}
			if job.PlainValues {
				col = ""
			}
			v := transform.Classify(col, raw)
			if v.Lossy {
				if lossy == 0 {
					sample = v.Raw
				}
				lossy++
			}
			literals[i] = im.dialect.Literal(v)
		}
		tuples = append(tuples, dialect.Tuple(literals))
	}
	return tuples, lossy, sample
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Summary renders results the way the convert report prints them.
func Summary(results []Result) (lines []string, total int) {
	for i, r := range results {
		icon := "✓"
		if r.Status != StatusOK {
			icon = "!"
		}
		lines = append(lines, fmt.Sprintf("[%s] [%02d/%02d] %-36s : %d rows (Target: %d) - %s",
			icon, i+1, len(results), r.TableName, r.Actual, r.Target, r.Status))
		if r.ErrorMsg != "" {
			lines = append(lines, fmt.Sprintf("    └ Error: %s", r.ErrorMsg))
		}
		if r.Lossy > 0 {
			lines = append(lines, fmt.Sprintf("    └ Lossy timestamps: %d", r.Lossy))
		}
		total += r.Actual
	}
	return lines, total
}
