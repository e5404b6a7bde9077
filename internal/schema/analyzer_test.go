package schema_test

import (
	"testing"

	"logi-migrate/internal/schema"

	"github.com/stretchr/testify/require"
)

func TestSortTables_ComplexCircular(t *testing.T) {
	// A -> B -> C -> D -> E -> A (cycle)
	// F -> E
	// G (independent)
	tables := []*schema.TableSpec{
		{Name: "A", Dependencies: []string{"B"}},
		{Name: "B", Dependencies: []string{"C"}},
		{Name: "C", Dependencies: []string{"D"}},
		{Name: "D", Dependencies: []string{"E"}},
		{Name: "E", Dependencies: []string{"A"}},
		{Name: "F", Dependencies: []string{"E"}},
		{Name: "G", Dependencies: []string{}},
	}

	sorted := schema.SortTables(tables)

	require.Len(t, sorted, len(tables))
	require.ElementsMatch(t, []string{"A", "B", "C", "D", "E", "F", "G"}, schema.Names(sorted))
	require.Equal(t, "G", sorted[0].Name)
}

func TestSortTables_Simple(t *testing.T) {
	tables := []*schema.TableSpec{
		{Name: "car_inspection_files", Dependencies: []string{"car_inspection"}},
		{Name: "car_inspection", Dependencies: []string{"files"}},
		{Name: "files"},
	}

	sorted := schema.SortTables(tables)

	require.Equal(t, []string{"files", "car_inspection", "car_inspection_files"}, schema.Names(sorted))
}

func TestSortTables_KeepsConfiguredOrder(t *testing.T) {
	sorted := schema.SortTables(schema.ImportTables())

	require.Equal(t, schema.Names(schema.ImportTables()), schema.Names(sorted))
}

func TestSortTables_IgnoresUnknownDependencies(t *testing.T) {
	tables := []*schema.TableSpec{
		{Name: "kudgcst", Dependencies: []string{"kudguri"}},
		{Name: "ichiban_cars"},
	}

	sorted := schema.SortTables(tables)

	require.Equal(t, []string{"kudgcst", "ichiban_cars"}, schema.Names(sorted))
}

func TestMissingColumns(t *testing.T) {
	target := map[string]bool{"uuid": true, "organization_id": true, "created_at": true}

	missing := schema.MissingColumns([]string{"uuid", "organization_id", "filename", "created_at", "blob"}, target)

	require.Equal(t, []string{"filename", "blob"}, missing)
}
