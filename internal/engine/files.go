package engine

import (
	"context"
	"fmt"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/objectstore"
	"logi-migrate/internal/schema"
	"logi-migrate/internal/transform"

	"github.com/pterm/pterm"
)

// DefaultStorageClass is written to files rows whose blob lives in the object store.
const DefaultStorageClass = "STANDARD"

// FileMetadata inserts files rows without their blob, pointing s3_key at the object
// the blob is uploaded to.
type FileMetadata struct {
	DB           DB
	Dialect      dialect.Dialect
	Table        string
	TenantID     string
	StorageClass string
	// OnProgress is called once per processed row.
	OnProgress func()
}

// Import writes one row per statement. t carries the dump's column names.
func (f *FileMetadata) Import(ctx context.Context, t *schema.Table) (Result, error) {
	res := Result{TableName: f.Table, Target: len(t.Rows), Status: StatusOK}
	if len(t.Rows) == 0 {
		res.Status = StatusNoData
		return res, nil
	}

	idx, err := columnIndex(t.Columns, "uuid", "filename", "type", "created", "deleted")
	if err != nil {
		return res, fmt.Errorf("%s: %w", t.Name, err)
	}
	storageClass := f.StorageClass
	if storageClass == "" {
		storageClass = DefaultStorageClass
	}

	for _, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		created := transform.Classify("created_at", row[idx["created"]])
		deleted := transform.Classify("deleted_at", row[idx["deleted"]])
		if created.Lossy {
			res.Lossy++
		}
		if deleted.Lossy {
			res.Lossy++
		}

		id := row[idx["uuid"]]
		query := f.Dialect.InsertFileMetadataQuery(f.Table, f.Dialect.Literal(created), f.Dialect.Literal(deleted))
		_, err := f.DB.ExecContext(ctx, query,
			id, f.TenantID, row[idx["filename"]], row[idx["type"]], objectstore.ObjectKey(f.TenantID, id), storageClass)
		if err != nil {
			if res.ErrorMsg == "" {
				res.ErrorMsg = truncate(err.Error(), maxErrorLen)
			}
			pterm.Warning.Printfln("%s %s: %v", f.Table, id, err)
		} else {
			res.Actual++
		}
		if f.OnProgress != nil {
			f.OnProgress()
		}
	}

	if res.Actual < res.Target {
		res.Status = StatusMissingData
	}
	return res, nil
}

func columnIndex(columns []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, n := range names {
		found := false
		for i, c := range columns {
			if c == n {
				idx[n] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("column %q not found in %v", n, columns)
		}
	}
	return idx, nil
}
