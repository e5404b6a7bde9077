package transform_test

import (
	"testing"

	"logi-migrate/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Timestamps(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		kind  transform.Kind
		lossy bool
	}{
		{"epoch millis", "1700000000000", transform.EpochMillis, false},
		{"longer epoch", "17000000000001", transform.EpochMillis, false},
		{"empty", "", transform.Null, false},
		{"null marker", `\N`, transform.Null, false},
		{"iso", "2024-01-01T00:00:00Z", transform.Timestamp, false},
		{"not a date", "not-a-date", transform.Null, true},
		{"short digits", "170000000000", transform.Null, true},
		{"date only", "2024-01-01", transform.Null, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := transform.Classify("created_at", tt.raw)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.lossy, v.Lossy)
		})
	}
}

func TestClassify_OnlyTimestampColumnsAreSpecial(t *testing.T) {
	assert.Equal(t, transform.Text, transform.Classify("created", "not-a-date").Kind)
	assert.Equal(t, transform.Text, transform.Classify("filename", "1700000000000").Kind)
	assert.Equal(t, transform.Empty, transform.Classify("filename", "").Kind)
	assert.Equal(t, transform.Null, transform.Classify("filename", `\N`).Kind)

	v := transform.Classify("filename", "O'Brien.pdf")
	assert.Equal(t, transform.Text, v.Kind)
	assert.Equal(t, "O'Brien.pdf", v.Raw)
}

func TestPadDateFragment(t *testing.T) {
	tests := map[string]string{
		"5":   " 5",
		"15":  "15",
		" 5":  " 5",
		"0":   " 0",
		"05":  " 05",
		"":    "",
		`\N`:  `\N`,
		"R":   "R",
		"5 ":  " 5",
		"100": "100",
	}

	for in, want := range tests {
		assert.Equal(t, want, transform.PadDateFragment(in), "input %q", in)
	}
}

func TestAugment(t *testing.T) {
	cols := []string{"uuid", "filename", "created_at"}
	rows := [][]string{
		{"a", "a.pdf", "1700000000000"},
		{"b", "b.pdf", `\N`},
	}

	gotCols, gotRows := transform.Augment(cols, rows, "organization_id", "org-1")

	require.Equal(t, []string{"uuid", "organization_id", "filename", "created_at"}, gotCols)
	require.Equal(t, [][]string{
		{"a", "org-1", "a.pdf", "1700000000000"},
		{"b", "org-1", "b.pdf", `\N`},
	}, gotRows)
	for _, r := range gotRows {
		require.Len(t, r, len(gotCols))
	}
	require.Equal(t, []string{"uuid", "filename", "created_at"}, cols, "input must not change")
	require.Len(t, rows[0], 3)
}

func TestInsertAfterFirst_Edges(t *testing.T) {
	assert.Equal(t, []string{"x"}, transform.InsertAfterFirst(nil, "x"))
	assert.Equal(t, []string{"id", "x"}, transform.InsertAfterFirst([]string{"id"}, "x"))
}

func TestPadColumns(t *testing.T) {
	cols := []string{"ElectCertMgNo", "GrantdateE", "GrantdateY", "GrantdateM", "Note"}
	rows := [][]string{{"123", "R", "6", "1", "7"}}

	out := transform.PadColumns(cols, rows, []string{"GrantdateE", "GrantdateY", "GrantdateM"})

	assert.Equal(t, []string{"123", "R", " 6", " 1", "7"}, out[0])
	assert.Equal(t, "6", rows[0][2])
}
