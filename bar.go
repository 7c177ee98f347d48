package cryptoath

// Bar is a bounded visual indicator derived from a percentage metric.
// Magnitude drives the size of the indicator and Label is overlaid on it.
type Bar struct {
	Magnitude float64 `json:"magnitude"`
	Label     string  `json:"label"`
}

// RenderBar converts a "percent from all-time-high" value into a Bar.
//
// The sign of p is discarded: a price is never above its own all-time-high, so
// the metric is a distance below the peak and the label always reads "-x.xx%".
// It returns false when p is null or not a number.
func RenderBar(p Value) (Bar, bool) {
	d, ok := p.Decimal()
	if !ok {
		return Bar{}, false
	}
	abs := d.Abs()
	return Bar{
		Magnitude: abs.InexactFloat64(),
		Label:     "-" + abs.StringFixed(2) + "%",
	}, true
}

// Width returns the magnitude clamped into [0, limit], for display purposes.
// The label keeps the unclamped value.
func (b Bar) Width(limit float64) float64 {
	switch {
	case b.Magnitude < 0:
		return 0
	case b.Magnitude > limit:
		return limit
	default:
		return b.Magnitude
	}
}
