package cryptoath

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config is the fixed configuration of an Assembler.
type Config struct {
	Title    string
	Cutoff   int // Rows visible without unlocking, DefaultCutoff if zero.
	Registry Registry
	Views    []ViewSpec

	// FreshnessField is the field holding the last update stamp of a record,
	// FieldLastUpdated if empty.
	FreshnessField string

	// UnlockSecret is the shared secret revealing the gated rows to a viewer.
	// Only its hash ends up in the Document. Empty means gated rows stay hidden.
	UnlockSecret string

	Logger *zap.Logger // optional
}

// Column describes one column of a Table.
type Column struct {
	Name   string `json:"name"`
	Header string `json:"header"`
	Kind   Kind   `json:"kind"`
}

// Table is the rendered form of one view.
type Table struct {
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Columns []Column      `json:"columns"`
	Rows    []RenderedRow `json:"rows"`
}

// Visible returns the number of visible rows.
func (t Table) Visible() int {
	n := 0
	for _, r := range t.Rows {
		if r.Tier == Visible {
			n++
		}
	}
	return n
}

// Document is the report handed to renderers: one table per view, plus the
// freshness of the snapshot.
type Document struct {
	Title     string
	Freshness string
	Cutoff    int
	Tables    []Table

	// UnlockHash is HashSecret of the unlock secret, empty if there is none.
	// It is not part of the JSON encoding.
	UnlockHash string `json:"-"`
}

// Table returns the table of the named view.
func (d *Document) Table(name string) (Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func (d Document) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("title", d.Title)
	w.Append("freshness", d.Freshness)
	w.Append("cutoff", d.Cutoff)
	w.Append("tables", d.Tables)
	return w.MarshalJSON()
}

// Assembler builds Documents out of record snapshots.
type Assembler struct {
	cfg Config
	log *zap.Logger
}

// NewAssembler validates cfg and returns an Assembler.
// All configuration errors are reported at once.
func NewAssembler(cfg Config) (*Assembler, error) {
	if cfg.Cutoff == 0 {
		cfg.Cutoff = DefaultCutoff
	}
	if cfg.Cutoff < 0 {
		return nil, fmt.Errorf("invalid cutoff %d", cfg.Cutoff)
	}
	if cfg.FreshnessField == "" {
		cfg.FreshnessField = FieldLastUpdated
	}
	if len(cfg.Views) == 0 {
		return nil, fmt.Errorf("%w: no view configured", ErrInvalidView)
	}

	var errs []error
	names := make(map[string]bool, len(cfg.Views))
	for _, v := range cfg.Views {
		if names[v.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate view %q", ErrInvalidView, v.Name))
		}
		names[v.Name] = true
		if err := v.Validate(cfg.Registry); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{cfg: cfg, log: log}, nil
}

// Cutoff returns the number of rows visible without unlocking.
func (a *Assembler) Cutoff() int { return a.cfg.Cutoff }

// Assemble projects, partitions and packs every view over records.
func (a *Assembler) Assemble(records []Record) (*Document, error) {
	doc := &Document{
		Title:     a.cfg.Title,
		Freshness: Freshness(records, a.cfg.FreshnessField),
		Cutoff:    a.cfg.Cutoff,
		Tables:    make([]Table, 0, len(a.cfg.Views)),
	}
	if a.cfg.UnlockSecret != "" {
		doc.UnlockHash = HashSecret(a.cfg.UnlockSecret)
	}

	for _, v := range a.cfg.Views {
		specs, err := v.columns(records, a.cfg.Registry)
		if err != nil {
			return nil, err
		}
		projections, err := Project(records, v, a.cfg.Registry)
		if err != nil {
			return nil, err
		}
		rows := make([]RenderedRow, len(projections))
		for i, p := range projections {
			rows[i] = p.Row
		}

		t := Table{
			Name:    v.Name,
			Title:   v.DisplayTitle(),
			Columns: make([]Column, len(specs)),
			Rows:    Partition(rows, a.cfg.Cutoff),
		}
		for i, s := range specs {
			t.Columns[i] = Column{Name: s.Name, Header: s.DisplayName(), Kind: s.Kind}
		}
		doc.Tables = append(doc.Tables, t)

		a.log.Debug("view assembled",
			zap.String("view", v.Name),
			zap.Int("records", len(records)),
			zap.Int("rows", len(t.Rows)),
			zap.Int("visible", t.Visible()),
		)
	}
	return doc, nil
}

// HashSecret returns the hex encoded SHA-256 of secret, as compared by the viewer.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Freshness returns the most recent value of field across records, "N/A" if
// no record carries it. Values are compared as text once normalized.
func Freshness(records []Record, field string) string {
	latest := ""
	for _, r := range records {
		v, ok := r.Get(field)
		if !ok || v.IsNull() {
			continue
		}
		if s := NormalizeStamp(v.String()); s > latest {
			latest = s
		}
	}
	if latest == "" {
		return notApplicable
	}
	return latest
}

var zoneMarkers = []string{"Z", "UTC", "GMT", "+00:00"}

// NormalizeStamp returns the common textual form of a date-time stamp:
// "YYYY-MM-DD hh:mm:ss" without a trailing zone marker.
func NormalizeStamp(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10] + " " + s[11:]
	}
	for _, z := range zoneMarkers {
		if strings.HasSuffix(s, z) {
			s = strings.TrimSpace(strings.TrimSuffix(s, z))
			break
		}
	}
	return s
}
