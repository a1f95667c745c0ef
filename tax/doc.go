/*
Package tax implements a progressive tax engine on top of the [money] package.

A [Schedule] holds marginal [Bracket] values and [DeductionRule] values,
all denominated in a single currency. Each bracket taxes only the slice of
income that falls within its bounds, so the tax owed is the sum of the
contributions of all brackets:

	brackets [0, 10000) @ 10%, [10000, 20000) @ 20%, [20000, ∞) @ 30%
	income 25000 → 10000 × 10% + 10000 × 20% + 5000 × 30% = 1000 + 2000 + 1500 = 4500

Deductions are claimed with [Deduction] values. Each claim is resolved
against the rule of its category: the claimed amount is capped by the rule
maximum, if any, and multiplied by the inclusion rate. The deductible total
is subtracted from income before the brackets are applied.

Brackets are not checked for gaps or overlaps; keeping them contiguous is
the responsibility of the caller.

# Errors

Constructors and calculations return errors wrapping [ErrCurrencyMismatch]
when currencies are mixed, and [ErrDeductionNotFound] when a claimed
category has no rule.
*/
package tax
