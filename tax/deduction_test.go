package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		want    Category
		wantErr bool
	}{
		{"capital_gains", CapitalGains, false},
		{"Capital-Gains", CapitalGains, false},
		{"EMPLOYEE_STOCK_OPTIONS", EmployeeStockOptions, false},
		{"", 0, true},
		{"dividends", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.name)
		if tt.wantErr {
			assert.Error(t, err, "ParseCategory(%q)", tt.name)
			continue
		}
		require.NoError(t, err, "ParseCategory(%q)", tt.name)
		assert.Equal(t, tt.want, got)
	}
}

func TestCategory_Text(t *testing.T) {
	text, err := EmployeeStockOptions.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "employee_stock_options", string(text))

	var c Category
	require.NoError(t, c.UnmarshalText(text))
	assert.Equal(t, EmployeeStockOptions, c)

	_, err = Category(0).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Category(0)", Category(0).String())
}

func TestDeductionRule_Apply(t *testing.T) {
	tests := []struct {
		name  string
		rule  DeductionRule
		claim string
		want  string
	}{
		{"uncapped", NewDeductionRule(CapitalGains, dec("0.5")), "5000", "2500"},
		{"uncapped full inclusion", NewDeductionRule(CapitalGains, dec("1")), "123.45", "123.45"},
		{"below cap", NewCappedDeductionRule(EmployeeStockOptions, cad("1000"), dec("0.5")), "800", "400"},
		{"at cap", NewCappedDeductionRule(EmployeeStockOptions, cad("1000"), dec("0.5")), "1000", "500"},
		{"above cap", NewCappedDeductionRule(EmployeeStockOptions, cad("1000"), dec("0.5")), "5000", "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Apply(Deduction{Category: tt.rule.Category(), Amount: cad(tt.claim)})
			require.NoError(t, err)
			assertAmount(t, cad(tt.want), got)
		})
	}

	t.Run("accessors", func(t *testing.T) {
		r := NewCappedDeductionRule(CapitalGains, cad("10"), dec("0.25"))
		max, ok := r.Max()
		assert.True(t, ok)
		assert.Equal(t, cad("10"), max)
		assert.Equal(t, dec("0.25"), r.InclusionRate())
		_, ok = NewDeductionRule(CapitalGains, dec("0.25")).Max()
		assert.False(t, ok)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		r := NewCappedDeductionRule(CapitalGains, cad("1000"), dec("0.5"))
		_, err := r.Apply(Deduction{Category: CapitalGains, Amount: usd("10")})
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}
