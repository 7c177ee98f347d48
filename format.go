package cryptoath

import (
	"github.com/etnz/cryptoath/date"
)

// notApplicable is the display text of a missing or unusable value.
const notApplicable = "N/A"

// Cell is the display form of one field of a row.
type Cell struct {
	Text string `json:"text"`
	// Bar is set for Percentage fields holding a number.
	Bar *Bar `json:"bar,omitempty"`
}

// formatter maps a raw value to its display form. It must be total.
type formatter func(v Value, spec FieldSpec) Cell

// formatters is the strategy registry, one formatter per Kind.
var formatters = map[Kind]formatter{
	Identifier: formatIdentifier,
	Currency:   formatCurrency,
	Percentage: formatPercentage,
	DateKind:   formatDate,
	Ratio:      formatRatio,
}

// Format returns the display form of v according to spec.
// It never fails: null values become "N/A", and non numeric values in a
// numeric field either keep their raw text (Currency) or become "N/A".
func Format(v Value, spec FieldSpec) Cell {
	f, ok := formatters[spec.Kind]
	if !ok {
		f = formatIdentifier
	}
	return f(v, spec)
}

func na() Cell { return Cell{Text: notApplicable} }

func formatIdentifier(v Value, _ FieldSpec) Cell {
	if v.IsNull() {
		return na()
	}
	return Cell{Text: v.String()}
}

func formatCurrency(v Value, spec FieldSpec) Cell {
	if v.IsNull() {
		return na()
	}
	d, ok := v.Decimal()
	if !ok {
		// never silently dropped
		return Cell{Text: v.String()}
	}
	return Cell{Text: formatAmount(d, spec.Currency, currencyDigits(d, spec.FixedDigits))}
}

func formatRatio(v Value, _ FieldSpec) Cell {
	d, ok := v.Decimal()
	if !ok {
		return na()
	}
	return Cell{Text: d.StringFixed(2)}
}

func formatDate(v Value, _ FieldSpec) Cell {
	if v.IsNull() || v.IsNumber() {
		return na()
	}
	on, err := date.Parse(v.String())
	if err != nil {
		return na()
	}
	return Cell{Text: on.String()}
}

func formatPercentage(v Value, _ FieldSpec) Cell {
	bar, ok := RenderBar(v)
	if !ok {
		return na()
	}
	return Cell{Text: bar.Label, Bar: &bar}
}
