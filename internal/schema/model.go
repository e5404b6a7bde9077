package schema

// TenantColumn is the discriminator added to every imported row.
const TenantColumn = "organization_id"

// Table is one table's contents as read from a dump.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
	Dropped int // rows whose field count did not match Columns
}

// TableSpec is an entry of the import list.
type TableSpec struct {
	Name         string
	Dependencies []string // tables that must be imported first
}

// ImportMode tells the incremental job how new rows reach the target.
type ImportMode int

const (
	// ModeBatch inserts new rows through the batched importer.
	ModeBatch ImportMode = iota
	// ModeFileMetadata inserts file rows without their blob and uploads the blob instead.
	ModeFileMetadata
)

// IncrementalSpec describes how one table is diffed and imported.
type IncrementalSpec struct {
	Name    string
	Key     []string // column names forming the row identity
	Mapping ColumnMapping
	Padded  []string // source columns receiving date-fragment padding
	Mode    ImportMode
	// PlainValues renders every field as text; timestamp columns get no conversion.
	PlainValues bool
}
