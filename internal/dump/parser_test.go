package dump_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logi-migrate/internal/dump"

	"github.com/stretchr/testify/require"
)

const sampleDump = `--
-- PostgreSQL database dump
--

SET statement_timeout = 0;

COPY public.files (uuid, filename, type, created, deleted) FROM stdin;
f1	a.pdf	application/pdf	1700000000000	\N
f2	b.png	image/png	2024-01-01T00:00:00Z	\N
\.

COPY public.users (id, name) FROM stdin;
1	alice
\.

COPY public.uriage (id, amount) FROM stdin;
1	100
\.

COPY public.kudguri (uuid, "unkouNo", created) FROM stdin;
k1	42	1700000000000
k2	short
\.
`

func TestParse_FilesBlock(t *testing.T) {
	tables, err := dump.Parse(strings.NewReader(sampleDump), dump.Filter{
		Include: []string{"files", "kudguri"},
		Skip:    []string{"public.users", "public.uriage"},
	})
	require.NoError(t, err)

	files := tables["files"]
	require.NotNil(t, files)
	require.Equal(t, []string{"uuid", "filename", "type", "created", "deleted"}, files.Columns)
	require.Len(t, files.Rows, 2)
	require.Equal(t, []string{"f2", "b.png", "image/png", "2024-01-01T00:00:00Z", `\N`}, files.Rows[1])
	require.Zero(t, files.Dropped)
}

func TestParse_DropsRowsWithWrongFieldCount(t *testing.T) {
	tables, err := dump.Parse(strings.NewReader(sampleDump), dump.Filter{Include: []string{"kudguri"}})
	require.NoError(t, err)

	k := tables["kudguri"]
	require.Equal(t, []string{"uuid", "unkouNo", "created"}, k.Columns)
	require.Equal(t, [][]string{{"k1", "42", "1700000000000"}}, k.Rows)
	require.Equal(t, 1, k.Dropped)
	for _, row := range k.Rows {
		require.Len(t, row, len(k.Columns))
	}
}

func TestParse_SkipsExcludedAndUnlistedTables(t *testing.T) {
	tables, err := dump.Parse(strings.NewReader(sampleDump), dump.Filter{
		Include: []string{"files", "users"},
		Skip:    []string{"public.users"},
	})
	require.NoError(t, err)

	require.Contains(t, tables, "files")
	require.NotContains(t, tables, "users")
	require.NotContains(t, tables, "uriage")
	require.NotContains(t, tables, "kudguri")
}

func TestParse_EmptyIncludeCollectsEverything(t *testing.T) {
	tables, err := dump.Parse(strings.NewReader(sampleDump), dump.Filter{})
	require.NoError(t, err)

	require.Len(t, tables, 4)
	require.Equal(t, [][]string{{"1", "alice"}}, tables["users"].Rows)
}

func TestParse_SkippedBlockDoesNotLeakRows(t *testing.T) {
	in := "COPY public.users (id, name) FROM stdin;\n1\tx\n\\.\n" +
		"COPY public.files (uuid, filename) FROM stdin;\nf\ta.pdf\n\\.\n" +
		"1\tafter-terminator\n"

	tables, err := dump.Parse(strings.NewReader(in), dump.Filter{Include: []string{"files"}, Skip: []string{"public.users"}})
	require.NoError(t, err)

	require.Equal(t, [][]string{{"f", "a.pdf"}}, tables["files"].Rows)
}

func TestParse_EmptyBlockAndMissingTrailingNewline(t *testing.T) {
	in := "COPY public.files (uuid, filename) FROM stdin;\n\\.\n" +
		"COPY public.files (uuid, filename) FROM stdin;\nf1\ta.pdf"

	tables, err := dump.Parse(strings.NewReader(in), dump.Filter{Include: []string{"files"}})
	require.NoError(t, err)

	require.Equal(t, [][]string{{"f1", "a.pdf"}}, tables["files"].Rows)
}

func TestParse_LongLines(t *testing.T) {
	blob := strings.Repeat("QUJD", 300_000)
	in := "COPY public.files (uuid, blob) FROM stdin;\nf1\t" + blob + "\n\\.\n"

	tables, err := dump.Parse(strings.NewReader(in), dump.Filter{Include: []string{"files"}})
	require.NoError(t, err)

	require.Len(t, tables["files"].Rows, 1)
	require.Equal(t, blob, tables["files"].Rows[0][1])
}

func TestParse_IgnoresMalformedHeader(t *testing.T) {
	in := "COPY public.files FROM stdin;\nf1\ta.pdf\n\\.\n"

	tables, err := dump.Parse(strings.NewReader(in), dump.Filter{})
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestParseFile_Zip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "db.zip")

	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not a dump"))
	require.NoError(t, err)
	w, err = zw.Create("db202601031200.sql")
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleDump))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	filter := dump.Filter{Include: []string{"files"}}

	tables, err := dump.ParseFile(archive, "db202601031200.sql", filter)
	require.NoError(t, err)
	require.Len(t, tables["files"].Rows, 2)

	tables, err = dump.ParseFile(archive, "", filter)
	require.NoError(t, err)
	require.Len(t, tables["files"].Rows, 2)

	_, err = dump.ParseFile(archive, "missing.sql", filter)
	require.Error(t, err)
}

func TestParseFile_Plain(t *testing.T) {
	file := filepath.Join(t.TempDir(), "db.sql")
	require.NoError(t, os.WriteFile(file, []byte(sampleDump), 0o600))

	tables, err := dump.ParseFile(file, "", dump.Filter{Include: []string{"files"}})
	require.NoError(t, err)
	require.Len(t, tables["files"].Rows, 2)

	_, err = dump.ParseFile(filepath.Join(t.TempDir(), "nope.sql"), "", dump.Filter{})
	require.Error(t, err)
}
