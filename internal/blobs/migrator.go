// Package blobs moves file blobs out of the database into an object store.
package blobs

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"logi-migrate/internal/dialect"
	"logi-migrate/internal/engine"
	"logi-migrate/internal/objectstore"

	"github.com/lib/pq"
	"github.com/pterm/pterm"
)

const DefaultPageSize = 100

type Options struct {
	Table        string
	PageSize     int
	StorageClass string
	// OnProgress is called once per processed row.
	OnProgress func()
}

type Stats struct {
	Pending  int
	Migrated int
	Errors   int
	// Stored and Inline come from the verification query run after paging.
	Stored int
	Inline int
}

type Migrator struct {
	db       engine.DB
	dialect  dialect.Dialect
	uploader objectstore.Uploader
	opts     Options
}

func NewMigrator(db engine.DB, d dialect.Dialect, u objectstore.Uploader, opts Options) *Migrator {
	if opts.Table == "" {
		opts.Table = "files"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.StorageClass == "" {
		opts.StorageClass = engine.DefaultStorageClass
	}
	return &Migrator{db: db, dialect: d, uploader: u, opts: opts}
}

type pendingRow struct {
	uuid        string
	tenant      string
	filename    string
	contentType string
	blob        string
}

// Pending counts rows still holding an inline blob.
func (m *Migrator) Pending(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, m.dialect.CountPendingBlobsQuery(m.opts.Table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending blobs: %w", err)
	}
	return n, nil
}

// Run migrates every pending row page by page. Rows that fail are rolled back,
// counted and left out of later pages.
func (m *Migrator) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	pending, err := m.Pending(ctx)
	if err != nil {
		return stats, err
	}
	stats.Pending = pending
	if pending == 0 {
		return stats, nil
	}

	failed := []string{}
	for {
		page, err := m.page(ctx, failed)
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			break
		}

		for _, row := range page {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := m.migrate(ctx, row); err != nil {
				pterm.Error.Printfln("Error migrating %s (%s): %v", row.uuid, row.filename, err)
				failed = append(failed, row.uuid)
				stats.Errors++
			} else {
				stats.Migrated++
			}
			if m.opts.OnProgress != nil {
				m.opts.OnProgress()
			}
		}
	}

	stats.Stored, stats.Inline, err = m.Verify(ctx)
	return stats, err
}

func (m *Migrator) page(ctx context.Context, exclude []string) ([]pendingRow, error) {
	rows, err := m.db.QueryContext(ctx, m.dialect.SelectPendingBlobsQuery(m.opts.Table), pq.Array(exclude), m.opts.PageSize)
	if err != nil {
		return nil, fmt.Errorf("selecting pending blobs: %w", err)
	}
	defer rows.Close()

	var page []pendingRow
	for rows.Next() {
		var r pendingRow
		var tenant, filename, contentType sql.NullString
		if err := rows.Scan(&r.uuid, &tenant, &filename, &contentType, &r.blob); err != nil {
			return nil, fmt.Errorf("scanning pending blob: %w", err)
		}
		r.tenant, r.filename, r.contentType = tenant.String, filename.String, contentType.String
		page = append(page, r)
	}
	return page, rows.Err()
}

func (m *Migrator) migrate(ctx context.Context, row pendingRow) (err error) {
	if row.tenant == "" {
		return errors.New("row has no organization_id")
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	data, err := DecodeBlob(row.blob)
	if err != nil {
		return fmt.Errorf("decoding blob: %w", err)
	}
	key := objectstore.ObjectKey(row.tenant, row.uuid)
	if err = m.uploader.Upload(ctx, key, data, row.contentType); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	if _, err = tx.ExecContext(ctx, m.dialect.MarkBlobStoredQuery(m.opts.Table), key, m.opts.StorageClass, row.uuid); err != nil {
		return fmt.Errorf("updating row: %w", err)
	}
	return tx.Commit()
}

// Verify reports how many rows point at the object store and how many still hold a blob.
func (m *Migrator) Verify(ctx context.Context) (stored, inline int, err error) {
	err = m.db.QueryRowContext(ctx, m.dialect.BlobVerificationQuery(m.opts.Table)).Scan(&stored, &inline)
	if err != nil {
		return 0, 0, fmt.Errorf("verifying migration: %w", err)
	}
	return stored, inline, nil
}

// DecodeBlob decodes a base64 blob, ignoring line breaks and other whitespace.
func DecodeBlob(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(clean)
}
