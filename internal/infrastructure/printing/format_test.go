package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"500", "500"},
		{"1500", "1.500"},
		{"810000", "810.000"},
		{"1234567", "1.234.567"},
		{"1000000000", "1.000.000.000"},
		{"-110000", "-110.000"},
		{"495000.4", "495.000"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatMoneyVND(t *testing.T) {
	assert.Equal(t, "990.000 VNĐ", FormatMoneyVND(decimal.RequireFromString("990000")))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2026", FormatDate(d))
}

func TestFormatMeasure(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"3", "3"},
		{"3.0000", "3"},
		{"0.24", "0.24"},
		{"1.08", "1.08"},
		{"0.123456", "0.1235"},
		{"0", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatMeasure(decimal.RequireFromString(tt.input)))
	}
}

func TestRomanNumeral(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, ""},
		{1, "I"},
		{2, "II"},
		{4, "IV"},
		{5, "V"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{1999, "MCMXCIX"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RomanNumeral(tt.n))
	}
}
