package cryptoath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Filter keeps the records whose field is a number above a minimum.
type Filter struct {
	Field     string
	Min       decimal.Decimal
	Inclusive bool // keep values equal to Min too.
}

// Keep reports whether r passes the filter. Records without a numeric value
// for the field never pass.
func (f Filter) Keep(r Record) bool {
	v, _ := r.Get(f.Field)
	d, ok := v.Decimal()
	if !ok {
		return false
	}
	if f.Inclusive {
		return d.GreaterThanOrEqual(f.Min)
	}
	return d.GreaterThan(f.Min)
}

func (f Filter) String() string {
	op := ">"
	if f.Inclusive {
		op = ">="
	}
	return fmt.Sprintf("%s %s %s", f.Field, op, f.Min)
}

// ViewSpec is one presentational projection of the records.
type ViewSpec struct {
	Name   string   // Identifies the view in a Document.
	Title  string   // Optional display title, defaults to Name.
	Fields []string // Field names, in column order.

	// SortBy is the field used to order rows, numeric and descending.
	// Records without a number sort last, ties keep the input order.
	SortBy string
	// Filter, if set, drops records after sorting.
	Filter *Filter
	// OmitAbsent drops the columns that no record carries at all.
	OmitAbsent bool
}

// DisplayTitle returns the title of the view.
func (v ViewSpec) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	return v.Name
}

// specs resolves the view fields against the registry.
func (v ViewSpec) specs(registry Registry) ([]FieldSpec, error) {
	if len(v.Fields) == 0 || registry.Len() == 0 {
		return nil, fmt.Errorf("view %q: %w", v.Name, ErrNoColumns)
	}
	specs := make([]FieldSpec, 0, len(v.Fields))
	for _, name := range v.Fields {
		s, ok := registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("view %q: %w %q", v.Name, ErrUnknownField, name)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// columns returns the specs of the columns displayed for records.
func (v ViewSpec) columns(records []Record, registry Registry) ([]FieldSpec, error) {
	specs, err := v.specs(registry)
	if err != nil {
		return nil, err
	}
	if !v.OmitAbsent {
		return specs, nil
	}
	present := make([]FieldSpec, 0, len(specs))
	for _, s := range specs {
		for _, r := range records {
			if r.Has(s.Name) {
				present = append(present, s)
				break
			}
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("view %q: none of the fields is in the data: %w", v.Name, ErrNoColumns)
	}
	return present, nil
}

// Validate checks the view against the registry.
func (v ViewSpec) Validate(registry Registry) error {
	if v.Name == "" {
		return fmt.Errorf("%w: a view has no name", ErrInvalidView)
	}
	_, err := v.specs(registry)
	return err
}
