package printing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a decimal as Vietnamese-style grouped digits with
// no fraction, e.g. 1234567 -> "1.234.567". Negative values keep their
// sign in front of the grouping.
func FormatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// FormatMoneyVND appends the currency label
func FormatMoneyVND(d decimal.Decimal) string {
	return FormatMoney(d) + " VNĐ"
}

// FormatDate renders a date as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatMeasure renders a billable measure to four decimal places with
// trailing zeroes trimmed ("3.0000" -> "3", "0.2400" -> "0.24").
func FormatMeasure(d decimal.Decimal) string {
	s := d.Round(4).StringFixed(4)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// RomanNumeral converts a positive integer to a Roman numeral. Values
// below 1 return the empty string.
func RomanNumeral(n int) string {
	if n < 1 {
		return ""
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}
