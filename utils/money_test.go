package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGBP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"4.5", "£4.50"},
		{"9.995", "£10.00"},
		{"135.25", "£135.25"},
		{"1009.99", "£1,009.99"},
		{"1234567.8", "£1,234,567.80"},
		{"-42.5", "-£42.50"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, FormatGBP(d), "input %s", tc.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "16.67%", FormatPercent(decimal.RequireFromString("16.666")))
	assert.Equal(t, "0%", FormatPercent(decimal.Zero))
}
