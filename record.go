package cryptoath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Field is a named cell of a Record.
type Field struct {
	Name  string
	Value Value
}

// F is a shortcut to build a Field from any decoded value.
func F(name string, value any) Field { return Field{Name: name, Value: ValueOf(value)} }

// Record is one row of the source dataset, one per tracked asset.
// Fields keep the order of the source. A Record is immutable.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns a Record made of fields, in that order.
// When a name is repeated, the last value wins and the first position is kept.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, exists := r.index[f.Name]; exists {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Get returns the value of the named field, and whether it exists.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Null(), false
	}
	return r.fields[i].Value, true
}

// Has reports whether the field exists in the record.
func (r Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Fields iterates over the fields in source order.
func (r Record) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, f := range r.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the record as a JSON object, fields in source order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for name, value := range r.Fields() {
		w.Append(name, value)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("invalid record: want a JSON object, got %v", tok)
	}
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid record key %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("invalid value for field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = NewRecord(fields...)
	return nil
}

// check that a Record pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = Record{}
var _ json.Unmarshaler = (*Record)(nil)
