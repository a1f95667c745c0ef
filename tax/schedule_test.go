package tax

import (
	"testing"

	"github.com/govalues/moneytax/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeBrackets() []Bracket {
	return []Bracket{
		MustNewBracket(cad("0"), cad("10000"), dec("0.1")),
		MustNewBracket(cad("10000"), cad("20000"), dec("0.2")),
		NewTopBracket(cad("20000"), dec("0.3")),
	}
}

func TestNewSchedule(t *testing.T) {
	t.Run("sorts brackets", func(t *testing.T) {
		bs := threeBrackets()
		s, err := NewSchedule(money.CAD, bs[2], bs[0], bs[1])
		require.NoError(t, err)
		assert.Equal(t, money.CAD, s.Curr())
		assert.Equal(t, bs, s.Brackets())
	})

	t.Run("stable for equal bounds", func(t *testing.T) {
		a := MustNewBracket(cad("0"), cad("100"), dec("0.1"))
		b := NewTopBracket(cad("0"), dec("0.05"))
		s, err := NewSchedule(money.CAD, a, b)
		require.NoError(t, err)
		assert.Equal(t, []Bracket{a, b}, s.Brackets())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		valid := NewTopBracket(cad("0"), dec("0.1"))
		s, err := NewSchedule(money.USD, valid)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
		assert.Nil(t, s)

		mixed := Bracket{min: cad("0"), max: usd("10"), bounded: true, rate: dec("0.1")}
		_, err = NewSchedule(money.CAD, valid, mixed)
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})

	t.Run("brackets are copied", func(t *testing.T) {
		bs := threeBrackets()
		s, err := NewSchedule(money.CAD, bs...)
		require.NoError(t, err)
		bs[0] = NewTopBracket(cad("5"), dec("0.9"))
		got := s.Brackets()
		got[1] = NewTopBracket(cad("5"), dec("0.9"))
		assert.Equal(t, threeBrackets(), s.Brackets())
	})
}

func TestSchedule_Tax(t *testing.T) {
	s, err := NewSchedule(money.CAD, threeBrackets()...)
	require.NoError(t, err)

	tests := []struct {
		income, want string
	}{
		{"0", "0"},
		{"5000", "500"},
		{"10000", "1000"},
		{"15000", "2000"},
		{"20000", "3000"},
		{"25000", "4500"},
		{"-10", "0"},
	}
	for _, tt := range tests {
		got, err := s.Tax(cad(tt.income))
		require.NoError(t, err, "Tax(%v)", tt.income)
		assertAmount(t, cad(tt.want), got)
	}

	t.Run("single bracket", func(t *testing.T) {
		s, err := NewSchedule(money.CAD, MustNewBracket(cad("0"), cad("10000"), dec("0.1")))
		require.NoError(t, err)
		got, err := s.Tax(cad("10000"))
		require.NoError(t, err)
		assertAmount(t, cad("1000"), got)
	})

	t.Run("empty schedule", func(t *testing.T) {
		s, err := NewSchedule(money.CAD)
		require.NoError(t, err)
		got, err := s.Tax(cad("10000"))
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("overlapping brackets are summed", func(t *testing.T) {
		s, err := NewSchedule(money.CAD,
			MustNewBracket(cad("0"), cad("100"), dec("0.1")),
			MustNewBracket(cad("50"), cad("150"), dec("0.1")),
		)
		require.NoError(t, err)
		got, err := s.Tax(cad("100"))
		require.NoError(t, err)
		assertAmount(t, cad("15"), got)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := s.Tax(usd("100"))
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}

func TestSchedule_SetDeduction(t *testing.T) {
	s, err := NewSchedule(money.CAD)
	require.NoError(t, err)

	_, ok := s.Deduction(CapitalGains)
	assert.False(t, ok)

	s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.5")))
	s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.75")))
	r, ok := s.Deduction(CapitalGains)
	require.True(t, ok)
	assert.Equal(t, dec("0.75"), r.InclusionRate())

	var zero Schedule
	zero.SetDeduction(EmployeeStockOptions, NewDeductionRule(EmployeeStockOptions, dec("1")))
	_, ok = zero.Deduction(EmployeeStockOptions)
	assert.True(t, ok)
}

func TestSchedule_DeductionsTotal(t *testing.T) {
	s, err := NewSchedule(money.CAD, NewTopBracket(cad("0"), dec("0.1")))
	require.NoError(t, err)
	s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.5")))
	s.SetDeduction(EmployeeStockOptions, NewCappedDeductionRule(EmployeeStockOptions, cad("1000"), dec("0.5")))

	got, err := s.DeductionsTotal(nil)
	require.NoError(t, err)
	assertAmount(t, cad("0"), got)

	got, err = s.DeductionsTotal([]Deduction{
		{Category: CapitalGains, Amount: cad("5000")},
		{Category: EmployeeStockOptions, Amount: cad("3000")},
		{Category: CapitalGains, Amount: cad("100")},
	})
	require.NoError(t, err)
	assertAmount(t, cad("3050"), got)

	t.Run("unknown category", func(t *testing.T) {
		s, err := NewSchedule(money.CAD, NewTopBracket(cad("0"), dec("0.1")))
		require.NoError(t, err)
		s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.5")))
		_, err = s.DeductionsTotal([]Deduction{
			{Category: CapitalGains, Amount: cad("5000")},
			{Category: EmployeeStockOptions, Amount: cad("100")},
		})
		assert.ErrorIs(t, err, ErrDeductionNotFound)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := s.DeductionsTotal([]Deduction{{Category: CapitalGains, Amount: usd("10")}})
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}

func TestSchedule_TaxWithDeductions(t *testing.T) {
	s, err := NewSchedule(money.CAD, NewTopBracket(cad("0"), dec("0.1")))
	require.NoError(t, err)
	s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.5")))

	got, err := s.TaxWithDeductions(cad("10000"), []Deduction{{Category: CapitalGains, Amount: cad("5000")}})
	require.NoError(t, err)
	assertAmount(t, cad("750"), got)

	got, err = s.TaxWithDeductions(cad("10000"), nil)
	require.NoError(t, err)
	assertAmount(t, cad("1000"), got)

	got, err = s.TaxWithDeductions(cad("1000"), []Deduction{{Category: CapitalGains, Amount: cad("5000")}})
	require.NoError(t, err)
	assertAmount(t, cad("0"), got)

	_, err = s.TaxWithDeductions(cad("10000"), []Deduction{{Category: EmployeeStockOptions, Amount: cad("1")}})
	assert.ErrorIs(t, err, ErrDeductionNotFound)
}

func TestSchedule_Assess(t *testing.T) {
	s, err := NewSchedule(money.CAD, threeBrackets()...)
	require.NoError(t, err)
	s.SetDeduction(CapitalGains, NewDeductionRule(CapitalGains, dec("0.5")))

	a, err := s.Assess(cad("27000"), []Deduction{{Category: CapitalGains, Amount: cad("4000")}})
	require.NoError(t, err)

	assertAmount(t, cad("27000"), a.Income)
	assertAmount(t, cad("2000"), a.Deductions)
	assertAmount(t, cad("25000"), a.Taxable)
	assertAmount(t, cad("4500"), a.Tax)
	require.Len(t, a.Lines, 3)
	assertAmount(t, cad("1000"), a.Lines[0].Tax)
	assertAmount(t, cad("2000"), a.Lines[1].Tax)
	assertAmount(t, cad("1500"), a.Lines[2].Tax)
	assert.Zero(t, a.MarginalRate.Cmp(dec("0.3")))
	assert.Zero(t, a.EffectiveRate.Round(4).Cmp(dec("0.1667")), "effective rate %v", a.EffectiveRate)

	t.Run("middle bracket", func(t *testing.T) {
		a, err := s.Assess(cad("15000"), nil)
		require.NoError(t, err)
		assert.Zero(t, a.MarginalRate.Cmp(dec("0.2")))
		assert.Zero(t, a.EffectiveRate.Round(4).Cmp(dec("0.1333")), "effective rate %v", a.EffectiveRate)
	})

	t.Run("zero income", func(t *testing.T) {
		a, err := s.Assess(cad("0"), nil)
		require.NoError(t, err)
		assert.True(t, a.EffectiveRate.IsZero())
		assert.Zero(t, a.MarginalRate.Cmp(dec("0.1")))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := s.Assess(cad("1"), []Deduction{{Category: EmployeeStockOptions, Amount: cad("1")}})
		assert.ErrorIs(t, err, ErrDeductionNotFound)
	})
}
