package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRule computes a single tax line from an invoice subtotal
type TaxRule interface {
	// Name returns the rule's display name, used as the breakdown key
	Name() string
	// Calculate returns the unrounded tax amount for the subtotal
	Calculate(subtotal decimal.Decimal) decimal.Decimal
}

// PercentageTaxRule is a TaxRule charging a fixed percentage of the subtotal
type PercentageTaxRule struct {
	name string
	rate decimal.Decimal
}

// NewPercentageTaxRule creates a percentage-of-subtotal tax rule.
// rate is expressed as a fraction, e.g. 0.15 for 15%.
func NewPercentageTaxRule(name string, rate decimal.Decimal) PercentageTaxRule {
	return PercentageTaxRule{name: name, rate: rate}
}

// Name returns the rule name
func (r PercentageTaxRule) Name() string {
	return r.name
}

// Calculate returns subtotal * rate, unrounded
func (r PercentageTaxRule) Calculate(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(r.rate)
}

// TaxLine is one rule's contribution to an invoice's tax
type TaxLine struct {
	Name   string
	Amount decimal.Decimal
}

// TaxEngine aggregates an ordered set of tax rules. Each rule's amount
// is rounded to two decimal places before summation, so the total is
// the sum of the rounded line items rather than a rounding of the raw
// sum. Adding a tax type means appending a rule at construction time.
type TaxEngine struct {
	rules []TaxRule
}

// NewTaxEngine creates a tax engine with the given rules, applied in order
func NewTaxEngine(rules ...TaxRule) *TaxEngine {
	return &TaxEngine{rules: rules}
}

// DefaultTaxEngine returns the engine with the standard rule set:
// 15% value-added tax and a 2.5% municipal fee.
func DefaultTaxEngine() *TaxEngine {
	return NewTaxEngine(
		NewPercentageTaxRule("VAT", decimal.NewFromFloat(0.15)),
		NewPercentageTaxRule("Municipal Fee", decimal.NewFromFloat(0.025)),
	)
}

// CalculateTotal returns the total tax for a subtotal, as the 2dp-rounded
// sum of each rule's 2dp-rounded amount. A negative subtotal is a
// programming error and panics.
func (e *TaxEngine) CalculateTotal(subtotal decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Breakdown(subtotal) {
		total = total.Add(line.Amount)
	}
	return total.Round(2)
}

// Breakdown returns each rule's rounded tax amount in registration order.
// A negative subtotal is a programming error and panics.
func (e *TaxEngine) Breakdown(subtotal decimal.Decimal) []TaxLine {
	if subtotal.IsNegative() {
		panic(fmt.Sprintf("billing: tax calculation on negative subtotal %s", subtotal))
	}
	lines := make([]TaxLine, 0, len(e.rules))
	for _, rule := range e.rules {
		lines = append(lines, TaxLine{
			Name:   rule.Name(),
			Amount: rule.Calculate(subtotal).Round(2),
		})
	}
	return lines
}
