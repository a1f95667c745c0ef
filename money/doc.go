/*
Package money implements exact monetary values in various currencies and
conversion between them using exchange rates.
It leverages the [decimal] package's capabilities for handling decimal floating-point
numbers and combines it with a [Currency] type for representing different currencies.

# Features

  - Immutable monetary values, ensuring safe usage across multiple goroutines
  - Arithmetic and comparison operations between amounts of one currency
  - Symmetric exchange rate tables with conversion, comparison, addition,
    subtraction and clamping of amounts in different currencies
  - Rounded equality with rounding half to even

# Representation

An [Amount] consists of a [Currency] and a decimal.Decimal value.
A Currency is an integer index into in-memory tables holding the code,
numeric code and scale of each supported currency.

Values are never rounded on construction. Arithmetic keeps every digit it
can within the 19 significant digits of a decimal.Decimal.

# Exchange

An [Exchange] owns a table of [ExchangeRate] values. Registering a rate from A
to B with [Exchange.SetRate] also registers the reciprocal rate from B to A.
Comparisons between amounts in different currencies are made in the
currency of the left operand:

	x := money.NewExchange()
	_ = x.SetRate(money.USD, money.CAD, decimal.MustParse("1.3"))
	ok, _ := x.Less(money.MustParseAmount("USD", "1"), money.MustParseAmount("CAD", "2"))
	// ok == true, since USD 1 = CAD 1.3

# Errors

Every operation that needs a single currency returns an error wrapping
[ErrCurrencyMismatch] when given amounts in different currencies.
Conversions return [ErrRateNotFound] when a rate is missing, and
[Exchange.SetRate] returns [ErrInvalidRate] for rates that are not positive.
Functions with a Must prefix panic instead of returning errors and are
intended for initialization of global variables.
*/
package money
