package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"43.75", "R$ 43,75"},
		{"999.999", "R$ 1.000,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-15.5", "-R$ 15,50"},
		{"-0.001", "R$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "22,9%", FormatPercent(decimal.RequireFromString("22.857142")))
	assert.Equal(t, "0,0%", FormatPercent(decimal.Zero))
	assert.Equal(t, "-4,5%", FormatPercent(decimal.RequireFromString("-4.5")))
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"R$ 153,00", "153"},
		{"-R$ 5,00", "-5"},
		{"12,5", "12.5"},
		{"100", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBRL(tt.in)
			require.NoError(t, err)
			assert.Truef(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseBRL_Invalid(t *testing.T) {
	for _, in := range []string{"", "R$", "abc", "1,2,3", "-"} {
		_, err := ParseBRL(in)
		assert.Errorf(t, err, "input %q", in)
	}
}

func TestFormatThenParseBRL(t *testing.T) {
	amount := decimal.RequireFromString("98765.43")
	got, err := ParseBRL(FormatBRL(amount))
	require.NoError(t, err)
	assert.True(t, amount.Equal(got))
}
