package cryptoath

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type valueKind int

const (
	nullValue valueKind = iota
	textValue
	numberValue
)

// Value is a raw cell value as received from the data source: null, a text or a number.
// Its zero value is null.
type Value struct {
	kind valueKind
	text string
	num  decimal.Decimal
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Text returns a text Value. Blank texts are null, like an empty spreadsheet cell.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: textValue, text: s}
}

// maxDigits bounds the digits on each side of the decimal point of a number.
// Values beyond it, like "1e50000000", are not numbers for the report.
const maxDigits = 64

// inRange reports whether d has at most maxDigits digits on each side of
// the decimal point.
func inRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < -maxDigits {
		return false
	}
	c := d.Coefficient()
	return len(c.Abs(c).String())+exp <= maxDigits
}

// Number returns a numeric Value.
// NaN, infinities and numbers out of range are null.
func Number[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Value {
	switch v := any(value).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Null()
		}
	case float32:
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return Null()
		}
	}
	d := newDecimal(value)
	if !inRange(d) {
		return Null()
	}
	return Value{kind: numberValue, num: d}
}

// ValueOf converts a decoded JSON value into a Value.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return Text(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil || !inRange(d) {
			return Text(v.String())
		}
		return Number(d)
	case float64:
		return Number(v)
	case float32:
		return Number(v)
	case int:
		return Number(v)
	case int64:
		return Number(v)
	case bool:
		return Text(strconv.FormatBool(v))
	default:
		return Text(fmt.Sprint(v))
	}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == nullValue }

// IsNumber reports whether the value was received as a number.
func (v Value) IsNumber() bool { return v.kind == numberValue }

// Decimal coerces the value to a number.
// Texts are accepted when they parse once spaces and "," grouping separators
// are removed, and fit in maxDigits.
func (v Value) Decimal() (decimal.Decimal, bool) {
	switch v.kind {
	case numberValue:
		return v.num, true
	case textValue:
		s := strings.ReplaceAll(strings.TrimSpace(v.text), ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil || !inRange(d) {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// String returns the raw string form of the value, "" for null.
func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return v.num.String()
	case textValue:
		return v.text
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case numberValue:
		return []byte(v.num.String()), nil
	case textValue:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch raw.(type) {
	case map[string]any, []any:
		return fmt.Errorf("invalid cell value %s", data)
	}
	*v = ValueOf(raw)
	return nil
}
