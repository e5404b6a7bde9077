package dialect

import (
	"fmt"
	"strings"

	"logi-migrate/internal/transform"

	"github.com/lib/pq"
)

type PostgresDialect struct{}

func (d *PostgresDialect) GetColumnsQuery() string {
	return `SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

// SetSessionVariableQuery sets a session-scoped setting ($1 = name, $2 = value).
// set_config is used instead of SET so the value can be bound.
func (d *PostgresDialect) SetSessionVariableQuery() string {
	return `SELECT set_config($1, $2, false)`
}

func (d *PostgresDialect) Literal(v transform.Value) string {
	switch v.Kind {
	case transform.Null:
		return "NULL"
	case transform.Empty:
		return "''"
	case transform.EpochMillis:
		// Classify guarantees Raw is all digits.
		return fmt.Sprintf("to_timestamp(%s::bigint / 1000.0)", v.Raw)
	case transform.Timestamp:
		return pq.QuoteLiteral(v.Raw) + "::timestamptz"
	default:
		return pq.QuoteLiteral(v.Raw)
	}
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

func (d *PostgresDialect) InsertBatchQuery(table string, cols []string, tuples []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	// Duplicate keys are expected when a dump is re-imported.
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s ON CONFLICT DO NOTHING",
		table, strings.Join(quoted, ", "), strings.Join(tuples, ", "))
}

// InsertOrganizationQuery takes $1 = id, $2 = name, $3 = slug.
func (d *PostgresDialect) InsertOrganizationQuery(table string) string {
	return fmt.Sprintf("INSERT INTO %s (id, name, slug, created_at, updated_at) VALUES (%s, NOW(), NOW()) ON CONFLICT (id) DO NOTHING",
		table, GeneratePlaceholders(3, d.Placeholder))
}

func (d *PostgresDialect) DeleteTenantQuery(table, tenantColumn string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, d.QuoteIdent(tenantColumn))
}

func (d *PostgresDialect) CountTenantQuery(table, tenantColumn string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", table, d.QuoteIdent(tenantColumn))
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

// InsertFileMetadataQuery takes $1 = uuid, $2 = organization_id, $3 = filename,
// $4 = type, $5 = s3_key, $6 = storage_class. The blob column stays NULL.
func (d *PostgresDialect) InsertFileMetadataQuery(table, createdLiteral, deletedLiteral string) string {
	return fmt.Sprintf(`INSERT INTO %s (uuid, organization_id, filename, type, blob, s3_key, storage_class, created_at, deleted_at) VALUES ($1, $2, $3, $4, NULL, $5, $6, %s, %s) ON CONFLICT DO NOTHING`,
		table, createdLiteral, deletedLiteral)
}

const pendingBlobs = `blob IS NOT NULL AND s3_key IS NULL AND deleted_at IS NULL`

func (d *PostgresDialect) CountPendingBlobsQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, pendingBlobs)
}

// SelectPendingBlobsQuery takes $1 = uuids to exclude (text[]), $2 = limit.
func (d *PostgresDialect) SelectPendingBlobsQuery(table string) string {
	return fmt.Sprintf(`SELECT uuid::text, organization_id::text, filename, type, blob FROM %s WHERE %s AND uuid::text <> ALL($1::text[]) ORDER BY created_at LIMIT $2`,
		table, pendingBlobs)
}

// MarkBlobStoredQuery takes $1 = s3_key, $2 = storage_class, $3 = uuid.
func (d *PostgresDialect) MarkBlobStoredQuery(table string) string {
	return fmt.Sprintf(`UPDATE %s SET s3_key = $1, storage_class = $2, blob = NULL, last_accessed_at = NOW() WHERE uuid::text = $3`, table)
}

func (d *PostgresDialect) BlobVerificationQuery(table string) string {
	return fmt.Sprintf(`SELECT COUNT(*) FILTER (WHERE s3_key IS NOT NULL), COUNT(*) FILTER (WHERE blob IS NOT NULL) FROM %s WHERE deleted_at IS NULL`, table)
}
