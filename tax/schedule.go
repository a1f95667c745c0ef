package tax

import (
	"errors"
	"fmt"
	"slices"

	"github.com/govalues/decimal"
	"github.com/govalues/moneytax/money"
)

var (
	// ErrCurrencyMismatch is returned when a bracket, schedule or income
	// mixes currencies. It is the same error as [money.ErrCurrencyMismatch].
	ErrCurrencyMismatch = money.ErrCurrencyMismatch

	// ErrDeductionNotFound is returned when a deduction is claimed for a
	// category that has no rule in the schedule.
	ErrDeductionNotFound = errors.New("deduction rule not found")
)

// Schedule is a progressive tax schedule: a set of marginal brackets and
// deduction rules, all denominated in one currency.
//
// Brackets are kept sorted by their lower bound and never change after
// construction. Brackets are not checked for gaps or overlaps: every
// bracket contributes to the total, so overlapping brackets tax the shared
// interval twice and gaps leave income untaxed.
//
// Schedule is not safe for concurrent mutation. Register deduction rules
// before sharing the schedule between goroutines for read-only use.
type Schedule struct {
	curr     money.Currency
	brackets []Bracket
	rules    map[Category]DeductionRule
}

// NewSchedule returns a schedule in currency curr with the given brackets.
// The brackets are sorted by lower bound; brackets with equal lower bounds
// keep their relative order.
//
// NewSchedule returns an error wrapping [ErrCurrencyMismatch] if any bracket
// bound is not denominated in curr.
func NewSchedule(curr money.Currency, brackets ...Bracket) (*Schedule, error) {
	for _, b := range brackets {
		if b.min.Curr() != curr || (b.bounded && b.max.Curr() != curr) {
			return nil, fmt.Errorf("schedule in %v: bracket %v: %w", curr, b, ErrCurrencyMismatch)
		}
	}
	sorted := slices.Clone(brackets)
	slices.SortStableFunc(sorted, func(a, b Bracket) int {
		c, _ := a.min.Cmp(b.min)
		return c
	})
	return &Schedule{
		curr:     curr,
		brackets: sorted,
		rules:    make(map[Category]DeductionRule),
	}, nil
}

// Curr returns the currency of the schedule.
func (s *Schedule) Curr() money.Currency {
	return s.curr
}

// Brackets returns a copy of the brackets, sorted by lower bound.
func (s *Schedule) Brackets() []Bracket {
	return slices.Clone(s.brackets)
}

// SetDeduction registers the rule for the category, replacing any rule
// registered before. The currency of the rule is not checked.
func (s *Schedule) SetDeduction(category Category, rule DeductionRule) {
	if s.rules == nil {
		s.rules = make(map[Category]DeductionRule)
	}
	s.rules[category] = rule
}

// Deduction returns the rule registered for the category and true,
// or false if there is none.
func (s *Schedule) Deduction(category Category) (DeductionRule, bool) {
	r, ok := s.rules[category]
	return r, ok
}

func (s *Schedule) zero() money.Amount {
	return money.MustNewAmount(s.curr, decimal.Decimal{})
}

// Tax returns the tax owed on income, the sum of the tax contributed by
// every bracket of the schedule.
//
// Tax returns an error wrapping [ErrCurrencyMismatch] if income is not
// denominated in the currency of the schedule.
func (s *Schedule) Tax(income money.Amount) (money.Amount, error) {
	if income.Curr() != s.curr {
		return money.Amount{}, fmt.Errorf("taxing %v in %v schedule: %w", income, s.curr, ErrCurrencyMismatch)
	}
	total := s.zero()
	for _, b := range s.brackets {
		t, err := b.Tax(income)
		if err != nil {
			return money.Amount{}, err
		}
		total, err = total.Add(t)
		if err != nil {
			return money.Amount{}, err
		}
	}
	return total, nil
}

// DeductionsTotal returns the sum of the deductible amounts of the claims,
// each resolved against the rule of its category.
//
// DeductionsTotal returns an error wrapping [ErrDeductionNotFound] as soon
// as a claim has no matching rule.
func (s *Schedule) DeductionsTotal(deductions []Deduction) (money.Amount, error) {
	total := s.zero()
	for _, d := range deductions {
		r, ok := s.rules[d.Category]
		if !ok {
			return money.Amount{}, fmt.Errorf("%v: %w", d.Category, ErrDeductionNotFound)
		}
		a, err := r.Apply(d)
		if err != nil {
			return money.Amount{}, err
		}
		total, err = total.Add(a)
		if err != nil {
			return money.Amount{}, fmt.Errorf("adding %v deduction: %w", d.Category, err)
		}
	}
	return total, nil
}

// TaxWithDeductions returns the tax owed on income reduced by the total of
// the deductions. No tax is computed if a deduction cannot be resolved.
// See also methods [Schedule.DeductionsTotal] and [Schedule.Tax].
func (s *Schedule) TaxWithDeductions(income money.Amount, deductions []Deduction) (money.Amount, error) {
	total, err := s.DeductionsTotal(deductions)
	if err != nil {
		return money.Amount{}, err
	}
	taxable, err := income.Sub(total)
	if err != nil {
		return money.Amount{}, fmt.Errorf("taxing %v in %v schedule: %w", income, s.curr, err)
	}
	return s.Tax(taxable)
}
