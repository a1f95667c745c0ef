package tax

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/govalues/moneytax/money"
)

// Bracket is an income interval taxed at a single marginal rate.
// A bounded bracket covers [min, max); a top bracket covers [min, ∞).
// Bracket is immutable.
type Bracket struct {
	min     money.Amount
	max     money.Amount
	bounded bool
	rate    decimal.Decimal
}

// NewBracket returns a bracket covering [min, max) taxed at rate.
//
// NewBracket returns an error wrapping [ErrCurrencyMismatch] if min and max
// are denominated in different currencies.
func NewBracket(min, max money.Amount, rate decimal.Decimal) (Bracket, error) {
	if !min.SameCurr(max) {
		return Bracket{}, fmt.Errorf("bracket [%v, %v): %w", min, max, ErrCurrencyMismatch)
	}
	return Bracket{min: min, max: max, bounded: true, rate: rate}, nil
}

// MustNewBracket is like [NewBracket] but panics if the bracket cannot be constructed.
func MustNewBracket(min, max money.Amount, rate decimal.Decimal) Bracket {
	b, err := NewBracket(min, max, rate)
	if err != nil {
		panic(fmt.Sprintf("NewBracket(%v, %v, %v) failed: %v", min, max, rate, err))
	}
	return b
}

// NewTopBracket returns an unbounded bracket covering [min, ∞) taxed at rate.
func NewTopBracket(min money.Amount, rate decimal.Decimal) Bracket {
	return Bracket{min: min, rate: rate}
}

// Min returns the lower bound of the bracket.
func (b Bracket) Min() money.Amount {
	return b.min
}

// Max returns the upper bound of the bracket and true,
// or false if the bracket is unbounded.
func (b Bracket) Max() (money.Amount, bool) {
	return b.max, b.bounded
}

// Rate returns the marginal rate of the bracket.
func (b Bracket) Rate() decimal.Decimal {
	return b.rate
}

// Curr returns the currency of the bracket bounds.
func (b Bracket) Curr() money.Currency {
	return b.min.Curr()
}

// Tax returns the tax contributed by this bracket alone for the given income:
//
//	0                    if income < min
//	(max - min) * rate   if the bracket is bounded and income >= max
//	(income - min) * rate otherwise
//
// Tax returns an error wrapping [ErrCurrencyMismatch] if income is not
// denominated in the currency of the bracket.
func (b Bracket) Tax(income money.Amount) (money.Amount, error) {
	switch below, err := income.Less(b.min); {
	case err != nil:
		return money.Amount{}, fmt.Errorf("bracket %v: %w", b, err)
	case below:
		return b.min.Zero(), nil
	}
	top := income
	if b.bounded {
		filled, err := income.GreaterOrEqual(b.max)
		if err != nil {
			return money.Amount{}, fmt.Errorf("bracket %v: %w", b, err)
		}
		if filled {
			top = b.max
		}
	}
	slice, err := top.Sub(b.min)
	if err != nil {
		return money.Amount{}, fmt.Errorf("bracket %v: %w", b, err)
	}
	return slice.Mul(b.rate)
}

// String implements the [fmt.Stringer] interface, for example
// "[CAD 0.00, CAD 10000.00) @ 0.1" or "[CAD 20000.00, ∞) @ 0.3".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (b Bracket) String() string {
	if !b.bounded {
		return fmt.Sprintf("[%v, ∞) @ %v", b.min, b.rate)
	}
	return fmt.Sprintf("[%v, %v) @ %v", b.min, b.max, b.rate)
}
