package blobs

import (
	"context"
	"fmt"

	"logi-migrate/internal/objectstore"
	"logi-migrate/internal/schema"
	"logi-migrate/internal/transform"

	"github.com/pterm/pterm"
)

type UploadStats struct {
	Uploaded int
	Skipped  int
	Errors   int
}

// UploadRows uploads the blob column of dump rows from the files table under
// {tenant}/{uuid}. Rows without a blob are skipped; failures are logged and counted.
func UploadRows(ctx context.Context, u objectstore.Uploader, t *schema.Table, tenant string, onProgress func()) (UploadStats, error) {
	var stats UploadStats
	if t == nil || len(t.Rows) == 0 {
		return stats, nil
	}

	idx := map[string]int{}
	for _, name := range []string{"uuid", "blob", "type", "filename"} {
		i := indexOf(t.Columns, name)
		if i < 0 {
			return stats, fmt.Errorf("%s: column %q not found in %v", t.Name, name, t.Columns)
		}
		idx[name] = i
	}

	for _, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if onProgress != nil {
			onProgress()
		}

		id, blob := row[idx["uuid"]], row[idx["blob"]]
		if blob == transform.NullMarker || blob == "" {
			pterm.Debug.Printfln("Skip %s: no blob data", id)
			stats.Skipped++
			continue
		}

		data, err := DecodeBlob(blob)
		if err == nil {
			err = u.Upload(ctx, objectstore.ObjectKey(tenant, id), data, row[idx["type"]])
		}
		if err != nil {
			pterm.Error.Printfln("Error uploading %s (%s): %v", id, row[idx["filename"]], err)
			stats.Errors++
			continue
		}
		stats.Uploaded++
	}
	return stats, nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
