package cryptoath

import "fmt"

// DefaultCutoff is the number of rows visible without unlocking.
const DefaultCutoff = 20

// Tier is the visibility class of a row. The zero value means unassigned.
type Tier int

const (
	Visible Tier = iota + 1 // shown to every viewer
	Gated                   // shown once the viewer unlocked the document
)

func (t Tier) String() string {
	switch t {
	case Visible:
		return "visible"
	case Gated:
		return "gated"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// RenderedRow is one record as displayed by a view.
type RenderedRow struct {
	Rank  int    `json:"rank"`
	Cells []Cell `json:"cells"`
	Tier  Tier   `json:"tier"`
}

// Partition returns a copy of rows where each row is tagged with its Tier:
// rows with a rank below cutoff are Visible, the others are Gated.
// Cells are shared with the input, and never modified.
func Partition(rows []RenderedRow, cutoff int) []RenderedRow {
	tiered := make([]RenderedRow, len(rows))
	for i, r := range rows {
		r.Tier = Gated
		if r.Rank < cutoff {
			r.Tier = Visible
		}
		tiered[i] = r
	}
	return tiered
}
