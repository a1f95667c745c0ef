package tax

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"github.com/govalues/moneytax/money"
)

// Category identifies a kind of deduction.
// The zero value is not a valid category.
type Category uint8

// Deduction categories.
const (
	CapitalGains Category = iota + 1
	EmployeeStockOptions
)

var categoryNames = map[Category]string{
	CapitalGains:         "capital_gains",
	EmployeeStockOptions: "employee_stock_options",
}

// ParseCategory converts a name such as "capital_gains" to a category.
// Matching ignores case, and dashes are treated as underscores.
func ParseCategory(name string) (Category, error) {
	key := strings.ReplaceAll(strings.ToLower(name), "-", "_")
	for c, n := range categoryNames {
		if n == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown deduction category %q", name)
}

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCategory(string(text))
	return err
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if _, ok := categoryNames[c]; !ok {
		return nil, fmt.Errorf("marshaling %v: unknown deduction category", c)
	}
	return []byte(c.String()), nil
}

// Deduction is a claim against the deduction rule of its category.
type Deduction struct {
	Category Category
	Amount   money.Amount
}

// DeductionRule defines how much of a claimed deduction is deductible.
// The claimed amount is optionally capped, and then multiplied by the
// inclusion rate.
type DeductionRule struct {
	category  Category
	max       money.Amount
	capped    bool
	inclusion decimal.Decimal
}

// NewDeductionRule returns an uncapped rule for the category.
func NewDeductionRule(category Category, inclusion decimal.Decimal) DeductionRule {
	return DeductionRule{category: category, inclusion: inclusion}
}

// NewCappedDeductionRule returns a rule for the category whose claims are
// limited to max before the inclusion rate is applied.
func NewCappedDeductionRule(category Category, max money.Amount, inclusion decimal.Decimal) DeductionRule {
	return DeductionRule{category: category, max: max, capped: true, inclusion: inclusion}
}

// Category returns the category the rule applies to.
func (r DeductionRule) Category() Category {
	return r.category
}

// Max returns the cap of the rule and true, or false if the rule is uncapped.
func (r DeductionRule) Max() (money.Amount, bool) {
	return r.max, r.capped
}

// InclusionRate returns the deductible fraction of a claim.
func (r DeductionRule) InclusionRate() decimal.Decimal {
	return r.inclusion
}

// Apply returns the deductible amount of the claim:
//
//	max * inclusion   if the rule is capped and the claim exceeds max
//	claim * inclusion otherwise
//
// No currency conversion is made. Apply returns an error wrapping
// [ErrCurrencyMismatch] if the rule is capped and the claim is denominated
// in another currency than the cap.
func (r DeductionRule) Apply(d Deduction) (money.Amount, error) {
	claim := d.Amount
	if r.capped {
		over, err := claim.Greater(r.max)
		if err != nil {
			return money.Amount{}, fmt.Errorf("applying %v deduction: %w", r.category, err)
		}
		if over {
			claim = r.max
		}
	}
	return claim.Mul(r.inclusion)
}
