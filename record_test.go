package cryptoath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestRecordJSONKeepsOrder(t *testing.T) {
	in := `{"Name":"Bitcoin","Rank":1,"Current Price (USD)":65000.5,"ATH Date":"2021-11-10","Market Cap (USD)":null}`

	var r Record
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var names []string
	for name := range r.Fields() {
		names = append(names, name)
	}
	want := []string{"Name", "Rank", "Current Price (USD)", "ATH Date", "Market Cap (USD)"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}

	if v, _ := r.Get("Rank"); !v.IsNumber() || v.String() != "1" {
		t.Errorf("Rank = %v, want the number 1", v)
	}
	if v, ok := r.Get("Market Cap (USD)"); !ok || !v.IsNull() {
		t.Errorf("Market Cap = %v (present %v), want a present null", v, ok)
	}
	if _, ok := r.Get("Volume"); ok {
		t.Error("Get(Volume) reports a missing field as present")
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("Marshal = %s, want %s", out, in)
	}
}

func TestRecordRejectsNested(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"Name":{"first":"x"}}`), &r); err == nil {
		t.Error("Unmarshal accepted a nested object as a cell")
	}
	if err := json.Unmarshal([]byte(`["Name"]`), &r); err == nil {
		t.Error("Unmarshal accepted an array as a record")
	}
}

func TestNewRecordDuplicate(t *testing.T) {
	r := NewRecord(F("a", 1), F("b", 2), F("a", 3))
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if v, _ := r.Get("a"); v.String() != "3" {
		t.Errorf("a = %v, want 3", v)
	}
}

func TestValueDecimal(t *testing.T) {
	tests := []struct {
		value  Value
		want   string
		wantOK bool
	}{
		{Number(1.5), "1.5", true},
		{Text(" 2,500.25 "), "2500.25", true},
		{Text("-31.852"), "-31.852", true},
		{Text("abc"), "", false},
		{Text(""), "", false},
		{Null(), "", false},
		{ValueOf(json.Number("12")), "12", true},
		{ValueOf(true), "", false},
		{Number(math.NaN()), "", false},
		{Number(math.Inf(1)), "", false},
		{Number(float32(math.Inf(-1))), "", false},
		{ValueOf(math.NaN()), "", false},
		{ValueOf(json.Number("1e50000000")), "", false},
		{Text("1e50000000"), "", false},
		{Text("1e-50000000"), "", false},
		{Text("1e63"), "1000000000000000000000000000000000000000000000000000000000000000", true},
		{Text("1e64"), "", false},
		{Number(decimal.New(1, -65)), "", false},
	}
	for _, tt := range tests {
		d, ok := tt.value.Decimal()
		if ok != tt.wantOK {
			t.Errorf("%v.Decimal() ok = %v, want %v", tt.value, ok, tt.wantOK)
			continue
		}
		if ok && d.String() != tt.want {
			t.Errorf("%v.Decimal() = %v, want %v", tt.value, d, tt.want)
		}
	}
}

func TestRecordNaNField(t *testing.T) {
	r := NewRecord(F(FieldName, "Bitcoin"), F(FieldCurrentPrice, math.NaN()), F(FieldMarketCap, math.Inf(1)))
	for _, name := range []string{FieldCurrentPrice, FieldMarketCap} {
		v, ok := r.Get(name)
		if !ok || !v.IsNull() {
			t.Errorf("Get(%q) = %v, %v, want a null value", name, v, ok)
		}
	}
	spec, _ := DefaultRegistry().Lookup(FieldCurrentPrice)
	v, _ := r.Get(FieldCurrentPrice)
	if got := Format(v, spec).Text; got != "N/A" {
		t.Errorf("Format(NaN) = %q, want %q", got, "N/A")
	}
}
