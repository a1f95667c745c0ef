package money

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go run scripts/currency/codegen.go

// Currency identifies one of the currencies known to this package.
// The set is closed: new currencies are added by extending the tables in
// currency_data.go.
// The zero value is [XXX], which indicates an unknown currency.
//
// Two currencies are equal if and only if they are the same identifier.
// When persisting or transmitting a currency, use the alphabetic code
// returned by [Currency.Code] rather than the integer value, as the
// mapping between integers and currencies may change.
type Currency uint8

var errInvalidCurrency = errors.New("invalid currency")

// ParseCurr converts a string to currency.
// The input string must be in one of the following formats:
//
//	USD
//	usd
//	840
//
// ParseCurr returns an error if the string does not represent a known currency.
func ParseCurr(curr string) (Currency, error) {
	c, ok := currLookup[strings.ToUpper(curr)]
	if !ok {
		return XXX, fmt.Errorf("%w: %q", errInvalidCurrency, curr)
	}
	return c, nil
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// Code returns the 3-letter ISO 4217 code of the currency.
func (c Currency) Code() string {
	if int(c) >= len(codeLookup) {
		return codeLookup[XXX]
	}
	return codeLookup[c]
}

// Num returns the 3-digit ISO 4217 code of the currency.
func (c Currency) Num() string {
	if int(c) >= len(numLookup) {
		return numLookup[XXX]
	}
	return numLookup[c]
}

// Scale returns the number of digits after the decimal point required for
// representing the minor unit of a currency.
// For example, the US Dollar has a scale of 2 (1 cent = 0.01 dollars) and
// the Japanese Yen has a scale of 0.
func (c Currency) Scale() int {
	if int(c) >= len(scaleLookup) {
		return 0
	}
	return int(scaleLookup[c])
}

// String implements the [fmt.Stringer] interface and returns the
// 3-letter code of the currency.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", XXX, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a 3-letter code.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// Currencies returns every known currency except [XXX], ordered by code.
func Currencies() []Currency {
	currs := make([]Currency, 0, len(codeLookup)-1)
	for i := range codeLookup {
		if c := Currency(i); c != XXX {
			currs = append(currs, c)
		}
	}
	return currs
}
