package money

import (
	"errors"
	"fmt"
	"slices"

	"github.com/govalues/decimal"
)

// ErrRateNotFound is returned when no exchange rate is registered for a
// pair of currencies.
var ErrRateNotFound = errors.New("exchange rate not found")

type pair struct {
	from, to Currency
}

// Exchange is a table of exchange rates keyed by ordered currency pairs.
// It converts amounts between currencies and compares, combines and
// clamps amounts denominated in different currencies by first converting
// them into a common one.
//
// The table is always pair-symmetric: registering a rate from A to B also
// registers its reciprocal from B to A. Rates are never derived through a
// third currency.
//
// Exchange is not safe for concurrent mutation. Register all rates with
// [Exchange.SetRate] before sharing the table between goroutines for
// read-only use.
type Exchange struct {
	rates map[pair]ExchangeRate
}

// NewExchange returns an empty exchange.
func NewExchange() *Exchange {
	return &Exchange{rates: make(map[pair]ExchangeRate)}
}

// SetRate registers rate for conversions from currency from to currency to,
// and its reciprocal for conversions in the opposite direction.
// Any rates previously registered for the pair, in either direction, are replaced.
//
// SetRate returns an error wrapping [ErrInvalidRate] if the rate is not
// positive, or if from and to are the same currency and the rate is not 1.
// On error the table is left unchanged.
func (x *Exchange) SetRate(from, to Currency, rate decimal.Decimal) error {
	fwd, err := NewExchRate(from, to, rate)
	if err != nil {
		return fmt.Errorf("setting rate: %w", err)
	}
	if from == to {
		return nil
	}
	inv, err := fwd.Inv()
	if err != nil {
		return fmt.Errorf("setting rate: %w", err)
	}
	if x.rates == nil {
		x.rates = make(map[pair]ExchangeRate)
	}
	x.rates[pair{from, to}] = fwd
	x.rates[pair{to, from}] = inv
	return nil
}

// Rate returns the exchange rate from currency from to currency to.
// The rate between a currency and itself is always 1.
//
// Rate returns an error wrapping [ErrRateNotFound] if no rate has been
// registered for the pair.
func (x *Exchange) Rate(from, to Currency) (ExchangeRate, error) {
	if from == to {
		return ExchangeRate{base: from, quote: to, value: decimal.MustNew(1, 0)}, nil
	}
	r, ok := x.rates[pair{from, to}]
	if !ok {
		return ExchangeRate{}, fmt.Errorf("%v/%v: %w", from, to, ErrRateNotFound)
	}
	return r, nil
}

// Rates returns all registered rates, ordered by base and then quote currency.
func (x *Exchange) Rates() []ExchangeRate {
	rates := make([]ExchangeRate, 0, len(x.rates))
	for _, r := range x.rates {
		rates = append(rates, r)
	}
	slices.SortFunc(rates, func(r, q ExchangeRate) int {
		if r.Base() != q.Base() {
			return int(r.Base()) - int(q.Base())
		}
		return int(r.Quote()) - int(q.Quote())
	})
	return rates
}

// Convert returns the amount converted to currency curr.
// If the amount is already denominated in curr, it is returned unchanged.
//
// Convert returns an error wrapping [ErrRateNotFound] if no rate has been
// registered for the pair.
func (x *Exchange) Convert(a Amount, curr Currency) (Amount, error) {
	if a.Curr() == curr {
		return a, nil
	}
	r, err := x.Rate(a.Curr(), curr)
	if err != nil {
		return Amount{}, fmt.Errorf("converting %v to %v: %w", a, curr, err)
	}
	return r.Conv(a)
}

// Add returns the sum of amounts a and b denominated in currency curr.
// Each operand not already in curr is converted before the addition.
func (x *Exchange) Add(a, b Amount, curr Currency) (Amount, error) {
	a, b, err := x.convertPair(a, b, curr)
	if err != nil {
		return Amount{}, err
	}
	return a.Add(b)
}

// Sub returns the difference between amounts a and b denominated in currency curr.
// Each operand not already in curr is converted before the subtraction.
func (x *Exchange) Sub(a, b Amount, curr Currency) (Amount, error) {
	a, b, err := x.convertPair(a, b, curr)
	if err != nil {
		return Amount{}, err
	}
	return a.Sub(b)
}

func (x *Exchange) convertPair(a, b Amount, curr Currency) (Amount, Amount, error) {
	a, err := x.Convert(a, curr)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	b, err = x.Convert(b, curr)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	return a, b, nil
}

// Cmp compares amounts a and b in the currency of a and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// If the currencies differ, b is converted into the currency of a before
// the comparison. The currency of the left operand always decides the
// currency of the comparison.
func (x *Exchange) Cmp(a, b Amount) (int, error) {
	e, err := x.Convert(b, a.Curr())
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, err)
	}
	return a.Cmp(e)
}

// Less returns true if a < b, comparing in the currency of a.
// See also method [Exchange.Cmp].
func (x *Exchange) Less(a, b Amount) (bool, error) {
	c, err := x.Cmp(a, b)
	return err == nil && c < 0, err
}

// LessOrEqual returns true if a <= b, comparing in the currency of a.
// See also method [Exchange.Cmp].
func (x *Exchange) LessOrEqual(a, b Amount) (bool, error) {
	c, err := x.Cmp(a, b)
	return err == nil && c <= 0, err
}

// Equal returns true if a = b, comparing in the currency of a.
// See also method [Exchange.Cmp].
func (x *Exchange) Equal(a, b Amount) (bool, error) {
	c, err := x.Cmp(a, b)
	return err == nil && c == 0, err
}

// GreaterOrEqual returns true if a >= b, comparing in the currency of a.
// See also method [Exchange.Cmp].
func (x *Exchange) GreaterOrEqual(a, b Amount) (bool, error) {
	c, err := x.Cmp(a, b)
	return err == nil && c >= 0, err
}

// Greater returns true if a > b, comparing in the currency of a.
// See also method [Exchange.Cmp].
func (x *Exchange) Greater(a, b Amount) (bool, error) {
	c, err := x.Cmp(a, b)
	return err == nil && c > 0, err
}

// Clamp converts a, min and max to currency curr and returns:
//
//	min if a < min
//	max if a > max
//	  a otherwise
//
// Operands already denominated in curr are not converted.
// See also method [Amount.Clamp].
func (x *Exchange) Clamp(a, min, max Amount, curr Currency) (Amount, error) {
	a, err := x.Convert(a, curr)
	if err != nil {
		return Amount{}, err
	}
	min, max, err = x.convertPair(min, max, curr)
	if err != nil {
		return Amount{}, err
	}
	return a.Clamp(min, max)
}
