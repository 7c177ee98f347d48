package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cryptoath"
)

// File reads records from a local snapshot.
//
// A ".json" file holds an array of objects, fields keep the order of the file.
// A ".csv" file has a header row with the field names.
type File struct {
	Path string
}

// Records implements Source.
func (f File) Records(_ context.Context) ([]cryptoath.Record, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(f.Path)); ext {
	case ".json":
		return decodeJSON(file)
	case ".csv":
		return decodeCSV(file)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q for %s, want .json or .csv", ext, f.Path)
	}
}

func decodeJSON(r io.Reader) ([]cryptoath.Record, error) {
	var records []cryptoath.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid JSON snapshot: %w", err)
	}
	return records, nil
}

func decodeCSV(r io.Reader) ([]cryptoath.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are padded with nulls
	cr.TrimLeadingSpace = true

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV snapshot: %w", err)
	}
	rows := make([]any, len(lines))
	for i, line := range lines {
		cells := make([]any, len(line))
		for j, c := range line {
			cells[j] = c
		}
		rows[i] = cells
	}
	if len(rows) == 0 {
		return []cryptoath.Record{}, nil
	}
	return decodeGrid(rows)
}
