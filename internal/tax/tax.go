// Package tax computes statutory deductions: professional tax and
// progressive annual income tax. It performs no I/O.
package tax

import (
	"github.com/shopspring/decimal"
)

// ProfessionalTax yields the PT for one period. State slab tables plug in
// here.
type ProfessionalTax interface {
	Amount(monthlyGross decimal.Decimal) decimal.Decimal
}

type FlatPT int64

func (f FlatPT) Amount(decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(f))
}

type Calculator struct {
	table Table
	caps  DeductionCaps
	pt    ProfessionalTax
}

type Option func(*Calculator)

func WithCaps(caps DeductionCaps) Option {
	return func(c *Calculator) { c.caps = caps }
}

func WithProfessionalTax(pt ProfessionalTax) Option {
	return func(c *Calculator) { c.pt = pt }
}

func NewCalculator(table Table, opts ...Option) *Calculator {
	c := &Calculator{table: table, pt: FlatPT(200)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) TableVersion() string {
	return c.table.Version
}

func (c *Calculator) ProfessionalTax(monthlyGross decimal.Decimal) decimal.Decimal {
	return c.pt.Amount(monthlyGross).Round(0)
}

// TaxableIncome subtracts the standard deduction and, for the old regime,
// the declared deductions after caps. It never goes below zero.
func (c *Calculator) TaxableIncome(annualGross decimal.Decimal, regime Regime, declared map[string]int64) (decimal.Decimal, error) {
	if !regime.Valid() {
		return decimal.Zero, ErrUnknownRegime
	}

	rt := c.table.forRegime(regime)
	taxable := annualGross.Sub(decimal.NewFromInt(rt.StandardDeduction))
	if regime == RegimeOld {
		taxable = taxable.Sub(c.allowedDeductions(declared))
	}
	if taxable.IsNegative() {
		return decimal.Zero, nil
	}
	return taxable, nil
}

func (c *Calculator) allowedDeductions(declared map[string]int64) decimal.Decimal {
	total := decimal.Zero
	for section, amount := range declared {
		if amount <= 0 {
			continue
		}
		if limit, ok := c.caps[section]; ok && amount > limit {
			amount = limit
		}
		total = total.Add(decimal.NewFromInt(amount))
	}
	return total
}

// AnnualTax applies the slab table progressively. Each bracket only taxes
// the income inside it; the sum is rounded once.
func (c *Calculator) AnnualTax(taxable decimal.Decimal, regime Regime) (decimal.Decimal, error) {
	if !regime.Valid() {
		return decimal.Zero, ErrUnknownRegime
	}

	total := decimal.Zero
	lower := decimal.Zero
	for _, slab := range c.table.forRegime(regime).Slabs {
		if taxable.LessThanOrEqual(lower) {
			break
		}
		portion := taxable.Sub(lower)
		if slab.UpTo > 0 {
			upper := decimal.NewFromInt(slab.UpTo)
			portion = decimal.Min(taxable, upper).Sub(lower)
			lower = upper
		} else {
			lower = taxable
		}
		total = total.Add(portion.Mul(slab.Rate))
	}
	return total.Round(0), nil
}

// MonthlyTax spreads annual tax over twelve periods.
func MonthlyTax(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(decimal.NewFromInt(12)).Round(0)
}
