package engine

import (
	"logi-migrate/internal/schema"
	"logi-migrate/internal/transform"
)

// Prepare turns a dump snapshot into a TableJob: date fragments named by their
// source column are padded, columns are renamed, then the tenant column is added.
func Prepare(t *schema.Table, mapping schema.ColumnMapping, padded []string, tenantID string) TableJob {
	rows := transform.PadColumns(t.Columns, t.Rows, padded)
	cols := mapping.MapAll(t.Columns)
	cols, rows = transform.Augment(cols, rows, schema.TenantColumn, tenantID)
	return TableJob{Table: t.Name, Columns: cols, Rows: rows}
}
