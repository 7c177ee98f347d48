package cryptoath

import "fmt"

// coin is a helper for tests to create an asset record.
func coin(name string, price, marketCap any) Record {
	return NewRecord(
		F(FieldName, name),
		F(FieldCurrentPrice, price),
		F(FieldMarketCap, marketCap),
	)
}

// coins returns n records named c0..cn-1 with decreasing market caps.
func coins(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = coin(fmt.Sprintf("c%d", i), float64(i+1), float64(1000*(n-i)))
	}
	return records
}

// names returns the display names of projected rows, assuming Name is the first column.
func names(rows []RenderedRow) []string {
	res := make([]string, len(rows))
	for i, r := range rows {
		res[i] = r.Cells[0].Text
	}
	return res
}

func rowsOf(projections []Projection) []RenderedRow {
	rows := make([]RenderedRow, len(projections))
	for i, p := range projections {
		rows[i] = p.Row
	}
	return rows
}
