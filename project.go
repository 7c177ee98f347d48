package cryptoath

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Projection is a projected row with the record it comes from.
type Projection struct {
	Record Record
	Row    RenderedRow // Tier is not assigned yet.
}

// Project applies view to records.
//
// Records are sorted by the view's sort field (descending, stable, missing
// values last), then filtered, then formatted field by field. Each row gets
// its rank, the 0-based position in the final sequence.
// Configuration errors (unknown field, no column) are returned as is,
// cell level problems never are.
func Project(records []Record, view ViewSpec, registry Registry) ([]Projection, error) {
	specs, err := view.columns(records, registry)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	if view.SortBy != "" {
		keys := make([]sortKey, len(records))
		for i, r := range records {
			v, _ := r.Get(view.SortBy)
			keys[i].value, keys[i].ok = v.Decimal()
		}
		slices.SortStableFunc(order, func(a, b int) int { return keys[a].compare(keys[b]) })
	}

	projections := make([]Projection, 0, len(records))
	for _, i := range order {
		r := records[i]
		if view.Filter != nil && !view.Filter.Keep(r) {
			continue
		}
		cells := make([]Cell, len(specs))
		for j, s := range specs {
			v, _ := r.Get(s.Name)
			cells[j] = s.Format(v)
		}
		projections = append(projections, Projection{
			Record: r,
			Row:    RenderedRow{Rank: len(projections), Cells: cells},
		})
	}
	return projections, nil
}

// sortKey is a numeric sort value, ok is false when missing.
type sortKey struct {
	value decimal.Decimal
	ok    bool
}

// compare orders keys descending, missing keys last.
func (k sortKey) compare(o sortKey) int {
	switch {
	case k.ok && o.ok:
		return o.value.Cmp(k.value)
	case k.ok:
		return -1
	case o.ok:
		return 1
	default:
		return 0
	}
}
