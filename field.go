package cryptoath

import (
	"fmt"
	"strings"
)

// Kind selects how a field is formatted.
type Kind int

const (
	Identifier Kind = iota // displayed as is
	Currency               // monetary amount, precision depends on magnitude
	Percentage             // rendered as a Bar
	DateKind               // calendar date, time of day discarded
	Ratio                  // plain number with 2 decimals
)

var kindNames = map[Kind]string{
	Identifier: "identifier",
	Currency:   "currency",
	Percentage: "percentage",
	DateKind:   "date",
	Ratio:      "ratio",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the textual name of a Kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid kind %q, want one of identifier, currency, percentage, date, ratio", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// DefaultCurrency is the currency used by currency fields that do not declare one.
const DefaultCurrency = "USD"

// FieldSpec describes one displayable field.
type FieldSpec struct {
	Name     string // Field name in the Record.
	Header   string // Column header, defaults to Name.
	Kind     Kind
	Currency string // ISO code for Currency fields, defaults to DefaultCurrency.

	// FixedDigits forces the number of fraction digits of a Currency field for
	// every magnitude. Zero selects the magnitude dependent precision.
	FixedDigits int
}

// DisplayName returns the column header of the field.
func (s FieldSpec) DisplayName() string {
	if s.Header != "" {
		return s.Header
	}
	return s.Name
}

// Format formats a raw value according to the field spec.
func (s FieldSpec) Format(v Value) Cell { return Format(v, s) }

// Registry is the set of displayable fields, keyed by field name.
type Registry struct {
	specs map[string]FieldSpec
	names []string
}

// NewRegistry returns a Registry holding specs.
func NewRegistry(specs ...FieldSpec) (Registry, error) {
	r := Registry{specs: make(map[string]FieldSpec, len(specs))}
	for _, s := range specs {
		if s.Name == "" {
			return Registry{}, fmt.Errorf("field spec with an empty name")
		}
		if _, exists := r.specs[s.Name]; exists {
			return Registry{}, fmt.Errorf("%w %q", ErrDuplicateField, s.Name)
		}
		r.specs[s.Name] = s
		r.names = append(r.names, s.Name)
	}
	return r, nil
}

// Lookup returns the spec of the named field.
func (r Registry) Lookup(name string) (FieldSpec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Len returns the number of specs.
func (r Registry) Len() int { return len(r.names) }

// Specs returns the specs in declaration order.
func (r Registry) Specs() []FieldSpec {
	specs := make([]FieldSpec, 0, len(r.names))
	for _, n := range r.names {
		specs = append(specs, r.specs[n])
	}
	return specs
}

// Recognized field names of the asset dataset.
const (
	FieldName           = "Name"
	FieldRank           = "Rank"
	FieldCurrentPrice   = "Current Price (USD)"
	FieldATHPrice       = "ATH Price (USD)"
	FieldATHDate        = "ATH Date"
	FieldPercentFromATH = "Percent from Price ATH"
	FieldMultiplyToATH  = "Multiply to Price ATH"
	FieldMarketCap      = "Market Cap (USD)"
	FieldLastUpdated    = "Last Updated"
)

// DefaultRegistry returns the registry of the recognized fields of the asset dataset.
func DefaultRegistry() Registry {
	r, _ := NewRegistry(
		FieldSpec{Name: FieldName, Kind: Identifier},
		FieldSpec{Name: FieldRank, Kind: Identifier},
		FieldSpec{Name: FieldCurrentPrice, Kind: Currency},
		FieldSpec{Name: FieldATHPrice, Kind: Currency},
		FieldSpec{Name: FieldATHDate, Kind: DateKind},
		FieldSpec{Name: FieldPercentFromATH, Kind: Percentage},
		FieldSpec{Name: FieldMultiplyToATH, Kind: Ratio},
		FieldSpec{Name: FieldMarketCap, Kind: Currency},
		FieldSpec{Name: FieldLastUpdated, Kind: Identifier},
	)
	return r
}
