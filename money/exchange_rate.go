package money

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

// ErrInvalidRate is returned when an exchange rate is not positive or cannot
// be inverted.
var ErrInvalidRate = errors.New("invalid exchange rate")

// ExchangeRate represents a unidirectional exchange rate between two currencies.
// The zero value corresponds to an exchange rate of "XXX/XXX 0", where XXX indicates
// an unknown currency.
// ExchangeRate is immutable and safe for concurrent use by multiple goroutines.
type ExchangeRate struct {
	base  Currency        // currency being exchanged
	quote Currency        // currency being obtained in exchange for the base currency
	value decimal.Decimal // how many units of quote currency are needed to exchange for 1 unit of the base currency
}

// NewExchRate returns a new exchange rate between the base and quote currencies.
//
// NewExchRate returns an error wrapping [ErrInvalidRate] if:
//   - the rate is zero or negative;
//   - the currencies are the same and the rate is not 1.
func NewExchRate(base, quote Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPos() {
		return ExchangeRate{}, fmt.Errorf("%v/%v %v: %w: must be positive", base, quote, rate, ErrInvalidRate)
	}
	if base == quote && !rate.IsOne() {
		return ExchangeRate{}, fmt.Errorf("%v/%v %v: %w: must be equal to 1", base, quote, rate, ErrInvalidRate)
	}
	return ExchangeRate{base: base, quote: quote, value: rate}, nil
}

// ParseExchRate converts currency and decimal strings to an exchange rate.
// See also constructors [ParseCurr] and [decimal.Parse].
func ParseExchRate(base, quote, rate string) (ExchangeRate, error) {
	b, err := ParseCurr(base)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("base currency parsing: %w", err)
	}
	q, err := ParseCurr(quote)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("quote currency parsing: %w", err)
	}
	d, err := decimal.Parse(rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate parsing: %w", err)
	}
	r, err := NewExchRate(b, q, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate construction: %w", err)
	}
	return r, nil
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the strings cannot be parsed.
// It simplifies safe initialization of global variables holding exchange rates.
func MustParseExchRate(base, quote, rate string) ExchangeRate {
	r, err := ParseExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q, %q) failed: %v", base, quote, rate, err))
	}
	return r
}

// Base returns the currency being exchanged.
func (r ExchangeRate) Base() Currency {
	return r.base
}

// Quote returns the currency being obtained in exchange for the base currency.
func (r ExchangeRate) Quote() Currency {
	return r.quote
}

// Decimal returns the number of quote currency units per base currency unit.
func (r ExchangeRate) Decimal() decimal.Decimal {
	return r.value
}

// Conv returns the amount converted from the base currency to the quote currency.
// The result is not rounded to the scale of the quote currency.
//
// Conv returns an error if:
//   - the currency of the amount is not the base currency;
//   - the integer part of the result has more than
//     ([decimal.MaxPrec] - [Currency.Scale]) digits.
func (r ExchangeRate) Conv(b Amount) (Amount, error) {
	if b.Curr() != r.Base() {
		return Amount{}, fmt.Errorf("converting [%v] with [%v]: %w", b, r, ErrCurrencyMismatch)
	}
	d, e := r.value, b.Decimal()
	f, err := d.MulExact(e, r.Quote().Scale())
	if err != nil {
		return Amount{}, fmt.Errorf("converting [%v] with [%v]: %w", b, r, err)
	}
	return newAmountSafe(r.Quote(), f)
}

// Inv returns the inverse of the exchange rate, with base and quote swapped
// and the value replaced by its reciprocal.
// The reciprocal may be rounded to [decimal.MaxPrec] significant digits.
func (r ExchangeRate) Inv() (ExchangeRate, error) {
	d := r.value
	if !d.IsPos() {
		return ExchangeRate{}, fmt.Errorf("inverting [%v]: %w", r, ErrInvalidRate)
	}
	f, err := d.One().Quo(d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting [%v]: %w: %w", r, ErrInvalidRate, err)
	}
	return NewExchRate(r.Quote(), r.Base(), f)
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the exchange rate, for example "USD/CAD 1.3".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.Base().String() + "/" + r.Quote().String() + " " + r.value.String()
}
