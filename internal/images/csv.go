package images

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadCSV reads rows of path,label,note. Label and note columns are optional.
// A first row whose first cell is "path", "image" or "file" is treated as a
// header. Relative paths are resolved against baseDir.
func ReadCSV(r io.Reader, baseDir string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var entries []Entry
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		path := strings.TrimSpace(row[0])
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		e := Entry{Path: path}
		if len(row) > 1 {
			e.Label = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			e.Note = strings.TrimSpace(row[2])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(row[0])) {
	case "path", "image", "file", "filename":
		return true
	}
	return false
}
