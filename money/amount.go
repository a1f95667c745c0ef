package money

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var (
	// ErrCurrencyMismatch is returned when an operation that requires
	// amounts in a single currency receives amounts in different ones.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	errAmountOverflow   = errors.New("amount overflow")
	errInvalidRange     = errors.New("invalid range")
)

// Amount type represents a monetary amount.
// Its zero value corresponds to "XXX 0", where [XXX] indicates an unknown currency.
// Amount is immutable: every operation returns a new value, so it is safe
// for concurrent use by multiple goroutines.
//
// Ordering and arithmetic are defined only between amounts denominated in
// the same currency. Use an [Exchange] to combine or compare amounts in
// different currencies.
type Amount struct {
	curr  Currency        // ISO 4217 currency
	value decimal.Decimal // monetary value
}

// newAmountUnsafe creates a new amount without checking the scale.
// Use it only if you are absolutely sure that the arguments are valid.
func newAmountUnsafe(c Currency, d decimal.Decimal) Amount {
	return Amount{curr: c, value: d}
}

// newAmountSafe creates a new amount, zero-padding the value to the scale
// of the currency. The value is never rounded.
func newAmountSafe(c Currency, d decimal.Decimal) (Amount, error) {
	if d.Scale() < c.Scale() {
		d = d.Pad(c.Scale())
		if d.Scale() < c.Scale() {
			return Amount{}, fmt.Errorf("padding amount: %w", errAmountOverflow)
		}
	}
	return newAmountUnsafe(c, d), nil
}

func mustNewAmount(c Currency, d decimal.Decimal) Amount {
	a, err := newAmountSafe(c, d)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%v, %v) failed: %v", c, d, err))
	}
	return a
}

// NewAmount returns an amount of the given currency and value.
// If the scale of the value is less than the scale of the currency, the
// result will be zero-padded to the right. The value is never rounded.
//
// NewAmount returns an error if the integer part of the value has more than
// ([decimal.MaxPrec] - [Currency.Scale]) digits.
func NewAmount(curr Currency, amount decimal.Decimal) (Amount, error) {
	a, err := newAmountSafe(curr, amount)
	if err != nil {
		return Amount{}, fmt.Errorf("converting decimal: %w", err)
	}
	return a, nil
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(curr Currency, amount decimal.Decimal) Amount {
	return mustNewAmount(curr, amount)
}

// ParseAmount converts currency and decimal strings to an amount.
// See also constructors [ParseCurr] and [decimal.Parse].
func ParseAmount(curr, amount string) (Amount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	d, err := decimal.Parse(amount)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	a, err := newAmountSafe(c, d)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount: %w", err)
	}
	return a, nil
}

// MustParseAmount is like [ParseAmount] but panics if any of the strings cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(curr, amount string) Amount {
	a, err := ParseAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q, %q) failed: %v", curr, amount, err))
	}
	return a
}

// Curr returns the currency of the amount.
func (a Amount) Curr() Currency {
	return a.curr
}

// Decimal returns the decimal representation of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Scale returns the number of digits after the decimal point.
func (a Amount) Scale() int {
	return a.value.Scale()
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.value.Sign()
}

// IsZero returns true if a = 0.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// IsNeg returns true if a < 0.
func (a Amount) IsNeg() bool {
	return a.value.IsNeg()
}

// IsPos returns true if a > 0.
func (a Amount) IsPos() bool {
	return a.value.IsPos()
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return newAmountUnsafe(a.Curr(), a.value.Abs())
}

// Neg returns the amount with the opposite sign.
func (a Amount) Neg() Amount {
	return newAmountUnsafe(a.Curr(), a.value.Neg())
}

// Zero returns an amount with a value of 0 in the same currency.
func (a Amount) Zero() Amount {
	return mustNewAmount(a.Curr(), a.value.Zero())
}

// SameCurr returns true if amounts are denominated in the same currency.
func (a Amount) SameCurr(b Amount) bool {
	return a.Curr() == b.Curr()
}

// Add returns the sum of amounts a and b.
//
// Add returns an error if:
//   - amounts are denominated in different currencies;
//   - the integer part of the result has more than ([decimal.MaxPrec] - [Currency.Scale]) digits.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	if !a.SameCurr(b) {
		return Amount{}, ErrCurrencyMismatch
	}
	c, d, e := a.Curr(), a.Decimal(), b.Decimal()
	d, err := d.AddExact(e, c.Scale())
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(c, d)
}

// Sub returns the difference between amounts a and b.
//
// Sub returns an error if:
//   - amounts are denominated in different currencies;
//   - the integer part of the result has more than ([decimal.MaxPrec] - [Currency.Scale]) digits.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	if !a.SameCurr(b) {
		return Amount{}, ErrCurrencyMismatch
	}
	c, d, e := a.Curr(), a.Decimal(), b.Decimal()
	d, err := d.SubExact(e, c.Scale())
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(c, d)
}

// Mul returns the (possibly rounded) product of amount a and factor e.
// The currency of the result is the currency of a.
//
// Mul returns an error if the integer part of the result has more than
// ([decimal.MaxPrec] - [Currency.Scale]) digits.
func (a Amount) Mul(e decimal.Decimal) (Amount, error) {
	c, err := a.mul(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mul(e decimal.Decimal) (Amount, error) {
	c, d := a.Curr(), a.Decimal()
	d, err := d.MulExact(e, c.Scale())
	if err != nil {
		return Amount{}, err
	}
	return newAmountSafe(c, d)
}

// Rat returns the (possibly rounded) ratio between amounts a and b.
//
// Rat returns an error if:
//   - amounts are denominated in different currencies;
//   - the divisor is 0.
func (a Amount) Rat(b Amount) (decimal.Decimal, error) {
	if !a.SameCurr(b) {
		return decimal.Decimal{}, fmt.Errorf("computing [%v / %v]: %w", a, b, ErrCurrencyMismatch)
	}
	d, e := a.Decimal(), b.Decimal()
	f, err := d.Quo(e)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("computing [%v / %v]: %w", a, b, err)
	}
	return f, nil
}

// Round returns an amount rounded to the specified number of digits after
// the decimal point using [rounding half to even] (banker's rounding).
// The result keeps at least the scale of the currency.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) Round(scale int) Amount {
	c, d := a.Curr(), a.Decimal()
	d = d.Round(scale).Pad(c.Scale())
	return newAmountUnsafe(c, d)
}

// RoundToCurr returns an amount rounded to the scale of its currency
// using rounding half to even (banker's rounding).
func (a Amount) RoundToCurr() Amount {
	return a.Round(a.Curr().Scale())
}

// RoundedEq returns true if amounts are denominated in the same currency and
// their values are equal after both are rounded to the given number of
// digits after the decimal point.
// Rounding is half to even, the same as [Amount.Round].
func (a Amount) RoundedEq(b Amount, scale int) bool {
	if !a.SameCurr(b) {
		return false
	}
	d, e := a.Decimal().Round(scale), b.Decimal().Round(scale)
	return d.Cmp(e) == 0
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Cmp returns an error if amounts are denominated in different currencies.
func (a Amount) Cmp(b Amount) (int, error) {
	if !a.SameCurr(b) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, ErrCurrencyMismatch)
	}
	d, e := a.Decimal(), b.Decimal()
	return d.Cmp(e), nil
}

// Less returns true if a < b.
// It returns an error if amounts are denominated in different currencies.
func (a Amount) Less(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c < 0, err
}

// LessOrEqual returns true if a <= b.
// It returns an error if amounts are denominated in different currencies.
func (a Amount) LessOrEqual(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return err == nil && c <= 0, err
}

// Equal returns true if a = b numerically, regardless of scale.
// It returns an error if amounts are denominated in different currencies.
func (a Amount) Equal(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return err == nil && c == 0, err
}

// GreaterOrEqual returns true if a >= b.
// It returns an error if amounts are denominated in different currencies.
func (a Amount) GreaterOrEqual(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return err == nil && c >= 0, err
}

// Greater returns true if a > b.
// It returns an error if amounts are denominated in different currencies.
func (a Amount) Greater(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	return c > 0, err
}

// Min returns the smaller amount.
// If the amounts are numerically equal, a is returned.
//
// Min returns an error if amounts are denominated in different currencies.
func (a Amount) Min(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c <= 0:
		return a, nil
	default:
		return b, nil
	}
}

// Max returns the larger amount.
// If the amounts are numerically equal, a is returned.
//
// Max returns an error if amounts are denominated in different currencies.
func (a Amount) Max(b Amount) (Amount, error) {
	switch c, err := a.Cmp(b); {
	case err != nil:
		return Amount{}, err
	case c >= 0:
		return a, nil
	default:
		return b, nil
	}
}

// Clamp compares amounts and returns:
//
//	min if a < min
//	max if a > max
//	  a otherwise
//
// Clamp returns an error if:
//   - amounts are denominated in different currencies;
//   - min is greater than max numerically.
func (a Amount) Clamp(min, max Amount) (Amount, error) {
	switch c, err := min.Cmp(max); {
	case err != nil:
		return Amount{}, err
	case c > 0:
		return Amount{}, fmt.Errorf("clamping %v to [%v, %v]: %w", a, min, max, errInvalidRange)
	}
	switch c, err := a.Cmp(min); {
	case err != nil:
		return Amount{}, err
	case c < 0:
		return min, nil
	}
	switch c, err := a.Cmp(max); {
	case err != nil:
		return Amount{}, err
	case c > 0:
		return max, nil
	}
	return a, nil
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of an amount, for example "USD 5.00".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.Curr().Code() + " " + a.Decimal().String()
}
