package dump

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"logi-migrate/internal/schema"
)

// Open returns a reader over a dump file. For .zip archives the named member is
// opened; an empty member selects the first .sql entry.
func Open(file, member string) (io.ReadCloser, error) {
	if !strings.EqualFold(path.Ext(file), ".zip") {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open dump: %w", err)
		}
		return f, nil
	}

	archive, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open dump archive: %w", err)
	}

	for _, entry := range archive.File {
		if member != "" && entry.Name != member {
			continue
		}
		if member == "" && !strings.EqualFold(path.Ext(entry.Name), ".sql") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			archive.Close()
			return nil, fmt.Errorf("open %s in %s: %w", entry.Name, file, err)
		}
		return &zipMember{ReadCloser: rc, archive: archive}, nil
	}

	archive.Close()
	if member == "" {
		return nil, fmt.Errorf("no .sql file found in %s", file)
	}
	return nil, fmt.Errorf("%s not found in %s", member, file)
}

type zipMember struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipMember) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// ParseFile opens and parses a dump in one step.
func ParseFile(file, member string, f Filter) (map[string]*schema.Table, error) {
	rc, err := Open(file, member)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tables, err := Parse(rc, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return tables, nil
}
