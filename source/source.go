// Package source acquires the asset records from local files or remote services.
//
// Acquisition failures are hard errors: no retry is attempted here.
package source

import (
	"context"
	"fmt"
	"sort"

	"github.com/etnz/cryptoath"
)

// Source provides a snapshot of records.
type Source interface {
	Records(ctx context.Context) ([]cryptoath.Record, error)
}

// decodeRows converts a decoded JSON value into records.
//
// Two shapes are supported:
//   - a grid, rows of cells, where the first row holds the field names.
//     Rows shorter than the header are padded with nulls, and empty rows are skipped.
//   - a list of objects, whose keys become fields in sorted order.
func decodeRows(v any) ([]cryptoath.Record, error) {
	rows, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of rows, got %T", v)
	}
	if len(rows) == 0 {
		return []cryptoath.Record{}, nil
	}
	switch rows[0].(type) {
	case []any:
		return decodeGrid(rows)
	case map[string]any:
		return decodeObjects(rows)
	default:
		return nil, fmt.Errorf("want rows as lists or objects, got %T", rows[0])
	}
}

func decodeGrid(rows []any) ([]cryptoath.Record, error) {
	header, _ := rows[0].([]any)
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = cryptoath.ValueOf(h).String()
	}

	records := make([]cryptoath.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cells, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: want a list of cells, got %T", i+1, row)
		}
		fields := make([]cryptoath.Field, 0, len(names))
		blank := true
		for j, name := range names {
			if name == "" {
				continue
			}
			var cell any
			if j < len(cells) {
				cell = cells[j]
			}
			f := cryptoath.F(name, cell)
			if !f.Value.IsNull() {
				blank = false
			}
			fields = append(fields, f)
		}
		if blank {
			continue
		}
		records = append(records, cryptoath.NewRecord(fields...))
	}
	return records, nil
}

func decodeObjects(rows []any) ([]cryptoath.Record, error) {
	records := make([]cryptoath.Record, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d: want an object, got %T", i, row)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]cryptoath.Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, cryptoath.F(k, obj[k]))
		}
		records = append(records, cryptoath.NewRecord(fields...))
	}
	return records, nil
}
