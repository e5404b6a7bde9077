package dialect

import "logi-migrate/internal/transform"

// Dialect abstracts database-specific SQL generation.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetColumnsQuery() string
	GetSchemaName(input string) string

	// Session
	SetSessionVariableQuery() string

	// Value Rendering
	Literal(v transform.Value) string
	QuoteIdent(name string) string

	// Query Generation
	InsertBatchQuery(table string, cols []string, tuples []string) string
	InsertOrganizationQuery(table string) string
	DeleteTenantQuery(table, tenantColumn string) string
	CountTenantQuery(table, tenantColumn string) string
	InsertFileMetadataQuery(table, createdLiteral, deletedLiteral string) string

	// Blob Migration
	CountPendingBlobsQuery(table string) string
	SelectPendingBlobsQuery(table string) string
	MarkBlobStoredQuery(table string) string
	BlobVerificationQuery(table string) string

	Placeholder(index int) string // Returns $1, $2, ...
}
