// Package propertytax resolves roll numbers to assessments and rates and
// estimates the resulting property tax.
package propertytax

import "github.com/shopspring/decimal"

// Estimate returns assessmentValue * (municipalRate + educationRate), rounded
// half-even to cents. Callers that exclude education tax pass a zero
// educationRate.
func Estimate(assessmentValue, municipalRate, educationRate decimal.Decimal) decimal.Decimal {
	return assessmentValue.Mul(municipalRate.Add(educationRate)).RoundBank(2)
}
