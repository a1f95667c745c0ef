package tax

import (
	"github.com/govalues/decimal"
	"github.com/govalues/moneytax/money"
)

// Line is the tax contributed by one bracket of an [Assessment].
type Line struct {
	Bracket Bracket
	Tax     money.Amount
}

// Assessment is a breakdown of the tax owed on an income.
type Assessment struct {
	Income        money.Amount
	Deductions    money.Amount // total deductible amount
	Taxable       money.Amount // income less deductions
	Lines         []Line       // one per bracket, in schedule order
	Tax           money.Amount
	EffectiveRate decimal.Decimal // tax / income, 0 if income is not positive
	MarginalRate  decimal.Decimal // rate of the last bracket reached by taxable income
}

// Assess computes the tax owed on income after deductions, together with
// the contribution of each bracket and the effective and marginal rates.
// It fails under the same conditions as [Schedule.TaxWithDeductions].
func (s *Schedule) Assess(income money.Amount, deductions []Deduction) (Assessment, error) {
	total, err := s.DeductionsTotal(deductions)
	if err != nil {
		return Assessment{}, err
	}
	taxable, err := income.Sub(total)
	if err != nil {
		return Assessment{}, err
	}
	tax, err := s.Tax(taxable)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		Income:     income,
		Deductions: total,
		Taxable:    taxable,
		Lines:      make([]Line, 0, len(s.brackets)),
		Tax:        tax,
	}
	for _, b := range s.brackets {
		t, err := b.Tax(taxable)
		if err != nil {
			return Assessment{}, err
		}
		a.Lines = append(a.Lines, Line{Bracket: b, Tax: t})
		if reached, _ := taxable.GreaterOrEqual(b.min); reached {
			a.MarginalRate = b.rate
		}
	}
	if income.IsPos() {
		a.EffectiveRate, err = tax.Rat(income)
		if err != nil {
			return Assessment{}, err
		}
	}
	return a, nil
}
