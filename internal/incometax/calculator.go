// Package incometax estimates combined federal and Ontario personal income
// tax with simplified progressive schedules.
package incometax

import (
	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/model"
)

// Calculator applies a federal and a provincial schedule.
type Calculator struct {
	Federal    Schedule
	Provincial Schedule
}

// Default returns the calculator for the built-in 2024 schedules.
func Default() Calculator {
	return Calculator{Federal: Federal, Provincial: Ontario}
}

// Calculate returns the tax owed on income after deducting an RRSP
// contribution. Taxable income never goes below zero. Each tax amount is
// rounded half-even to cents; the total is computed before rounding.
func (c Calculator) Calculate(income, rrsp decimal.Decimal) model.IncomeTaxResult {
	taxable := decimal.Max(income.Sub(rrsp), decimal.Zero)

	federal := c.Federal.Apply(taxable)
	provincial := c.Provincial.Apply(taxable)

	return model.IncomeTaxResult{
		Income:        income,
		RRSP:          rrsp,
		TaxableIncome: taxable,
		FederalTax:    federal.RoundBank(2),
		OntarioTax:    provincial.RoundBank(2),
		TotalTax:      federal.Add(provincial).RoundBank(2),
	}
}

// Calculate uses the default calculator.
func Calculate(income, rrsp decimal.Decimal) model.IncomeTaxResult {
	return Default().Calculate(income, rrsp)
}
