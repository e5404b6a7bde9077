package transform

// InsertAfterFirst returns a copy of fields with v placed at index 1.
func InsertAfterFirst(fields []string, v string) []string {
	if len(fields) == 0 {
		return []string{v}
	}
	out := make([]string, 0, len(fields)+1)
	out = append(out, fields[0], v)
	return append(out, fields[1:]...)
}

// Augment adds the tenant column to the column list and the tenant id to every row,
// both right after the identity column.
func Augment(columns []string, rows [][]string, tenantColumn, tenantID string) ([]string, [][]string) {
	outRows := make([][]string, len(rows))
	for i, row := range rows {
		outRows[i] = InsertAfterFirst(row, tenantID)
	}
	return InsertAfterFirst(columns, tenantColumn), outRows
}

// PadColumns applies PadDateFragment to the fields of the named columns.
// Rows are copied; the input is left untouched.
func PadColumns(columns []string, rows [][]string, padded []string) [][]string {
	want := make(map[string]bool, len(padded))
	for _, c := range padded {
		want[c] = true
	}
	var idx []int
	for i, c := range columns {
		if want[c] {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return rows
	}

	out := make([][]string, len(rows))
	for r, row := range rows {
		cp := append([]string(nil), row...)
		for _, i := range idx {
			if i < len(cp) {
				cp[i] = PadDateFragment(cp[i])
			}
		}
		out[r] = cp
	}
	return out
}
