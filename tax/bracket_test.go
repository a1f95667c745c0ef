package tax

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/govalues/moneytax/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cad(s string) money.Amount { return money.MustParseAmount("CAD", s) }
func usd(s string) money.Amount { return money.MustParseAmount("USD", s) }
func dec(s string) decimal.Decimal { return decimal.MustParse(s) }

// assertAmount checks currency and numeric value, ignoring scale.
func assertAmount(t *testing.T, want, got money.Amount) {
	t.Helper()
	eq, err := got.Equal(want)
	if assert.NoError(t, err) {
		assert.True(t, eq, "got %v, want %v", got, want)
	}
}

func TestNewBracket(t *testing.T) {
	b, err := NewBracket(cad("0"), cad("10000"), dec("0.1"))
	require.NoError(t, err)
	assert.Equal(t, money.CAD, b.Curr())
	assert.Equal(t, cad("0"), b.Min())
	max, ok := b.Max()
	assert.True(t, ok)
	assert.Equal(t, cad("10000"), max)
	assert.Equal(t, dec("0.1"), b.Rate())

	_, err = NewBracket(cad("0"), usd("1"), dec("0.1"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	assert.Panics(t, func() { MustNewBracket(cad("0"), usd("1"), dec("0.1")) })
}

func TestNewTopBracket(t *testing.T) {
	b := NewTopBracket(cad("20000"), dec("0.3"))
	_, ok := b.Max()
	assert.False(t, ok)
	assert.Equal(t, "[CAD 20000.00, ∞) @ 0.3", b.String())
}

func TestBracket_Tax(t *testing.T) {
	bounded := MustNewBracket(cad("10000"), cad("20000"), dec("0.2"))
	top := NewTopBracket(cad("20000"), dec("0.3"))

	tests := []struct {
		name    string
		bracket Bracket
		income  string
		want    string
	}{
		{"below min", bounded, "5000", "0"},
		{"at min", bounded, "10000", "0"},
		{"partial", bounded, "15000", "1000"},
		{"at max", bounded, "20000", "2000"},
		{"above max", bounded, "25000", "2000"},
		{"negative income", bounded, "-100", "0"},
		{"top below min", top, "19999.99", "0"},
		{"top partial", top, "25000", "1500"},
		{"top large", top, "1000000", "294000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bracket.Tax(cad(tt.income))
			require.NoError(t, err)
			assert.Equal(t, money.CAD, got.Curr())
			assertAmount(t, cad(tt.want), got)
		})
	}

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := bounded.Tax(usd("15000"))
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}
