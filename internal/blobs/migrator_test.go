package blobs_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"logi-migrate/internal/blobs"
	"logi-migrate/internal/dialect"
	"logi-migrate/internal/objectstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const org = "00000000-0000-0000-0000-000000000001"

var pendingCols = []string{"uuid", "organization_id", "filename", "type", "blob"}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestMigrator_Run(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := objectstore.NewMemory()
	store.Fail = func(key string) error {
		if key == org+"/u3" {
			return errors.New("access denied")
		}
		return nil
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files WHERE blob IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`SELECT uuid::text, organization_id::text, filename, type, blob FROM files`).
		WithArgs(sqlmock.AnyArg(), 2).
		WillReturnRows(sqlmock.NewRows(pendingCols).
			AddRow("u1", org, "a.pdf", "application/pdf", b64("%PDF-1.4")).
			AddRow("u2", org, "b.png", "image/png", "!!not base64!!"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE files SET s3_key = \$1`).
		WithArgs(org+"/u1", "STANDARD", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT uuid::text`).
		WithArgs(`{"u2"}`, 2).
		WillReturnRows(sqlmock.NewRows(pendingCols).
			AddRow("u3", org, "c.txt", "text/plain", b64("hello")))
	mock.ExpectBegin()
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT uuid::text`).
		WithArgs(`{"u2","u3"}`, 2).
		WillReturnRows(sqlmock.NewRows(pendingCols))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"stored", "inline"}).AddRow(1, 2))

	m := blobs.NewMigrator(db, &dialect.PostgresDialect{}, store, blobs.Options{PageSize: 2})
	stats, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, blobs.Stats{Pending: 3, Migrated: 1, Errors: 2, Stored: 1, Inline: 2}, stats)
	require.Contains(t, store.Objects, org+"/u1")
	assert.Equal(t, "%PDF-1.4", string(store.Objects[org+"/u1"].Data))
	assert.Equal(t, "application/pdf", store.Objects[org+"/u1"].ContentType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_NothingPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	stats, err := blobs.NewMigrator(db, &dialect.PostgresDialect{}, objectstore.NewMemory(), blobs.Options{}).Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpdateFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT uuid::text`).
		WillReturnRows(sqlmock.NewRows(pendingCols).AddRow("u1", org, "a.pdf", "application/pdf", b64("x")))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE files`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT uuid::text`).
		WithArgs(`{"u1"}`, 100).
		WillReturnRows(sqlmock.NewRows(pendingCols))
	mock.ExpectQuery(`FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"stored", "inline"}).AddRow(0, 1))

	stats, err := blobs.NewMigrator(db, &dialect.PostgresDialect{}, objectstore.NewMemory(), blobs.Options{}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.Inline)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_NullTenantIsRowFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT uuid::text`).
		WillReturnRows(sqlmock.NewRows(pendingCols).
			AddRow("u1", nil, "a.pdf", "application/pdf", b64("x")).
			AddRow("u2", org, "b.pdf", "application/pdf", b64("y")))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE files SET s3_key = \$1`).
		WithArgs(org+"/u2", "STANDARD", "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT uuid::text`).
		WithArgs(`{"u1"}`, 100).
		WillReturnRows(sqlmock.NewRows(pendingCols))
	mock.ExpectQuery(`FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"stored", "inline"}).AddRow(1, 1))

	store := objectstore.NewMemory()
	stats, err := blobs.NewMigrator(db, &dialect.PostgresDialect{}, store, blobs.Options{}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Migrated)
	assert.Equal(t, 1, stats.Errors)
	assert.Len(t, store.Objects, 1)
	assert.Contains(t, store.Objects, org+"/u2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeBlob(t *testing.T) {
	got, err := blobs.DecodeBlob("aGVs\nbG8=\r\n")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = blobs.DecodeBlob("not base64!")
	require.Error(t, err)
}
