package cryptoath

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Precision of currency amounts.
const (
	amountDigits    = 2 // |v| >= 1
	subUnitDigits   = 6 // |v| < 1, keeps the significant digits of small prices
	defaultTemplate = "1 $"
)

var maxShifted = decimal.NewFromInt(math.MaxInt64)

// currency returns the go-money currency for code. Unknown codes get a
// neutral format using the code as grapheme.
func currency(code string) money.Currency {
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, code).Currency()
	if cur.Template == "" {
		cur.Grapheme = code
		cur.Template = defaultTemplate
		cur.Decimal = "."
		cur.Thousand = ","
	}
	return cur
}

// currencyDigits returns the number of fraction digits used to display v.
func currencyDigits(v decimal.Decimal, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	if v.Abs().LessThan(decimal.NewFromInt(1)) {
		return subUnitDigits
	}
	return amountDigits
}

// formatAmount formats v in the currency code with exactly digits fraction digits,
// grouping thousands. Rounding is half away from zero.
func formatAmount(v decimal.Decimal, code string, digits int) string {
	cur := currency(code)
	shifted := v.Round(int32(digits)).Shift(int32(digits))
	if shifted.Abs().GreaterThan(maxShifted) {
		return formatLarge(v, cur, digits)
	}
	f := money.NewFormatter(digits, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(shifted.IntPart())
}

// formatLarge formats amounts out of go-money's int64 range the way
// go-money does: grouped digits in the currency template, sign first.
func formatLarge(v decimal.Decimal, cur money.Currency, digits int) string {
	integer, fraction, _ := strings.Cut(v.Abs().StringFixed(int32(digits)), ".")
	var b strings.Builder
	for i, c := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(c)
	}
	if digits > 0 {
		b.WriteString(cur.Decimal)
		b.WriteString(fraction)
	}
	s := strings.Replace(cur.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if v.IsNegative() {
		s = "-" + s
	}
	return s
}
