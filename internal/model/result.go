package model

import "github.com/shopspring/decimal"

// PropertyTaxResult is the outcome of estimating one roll number.
type PropertyTaxResult struct {
	RollNumber      string          `json:"roll_number"`
	Address         string          `json:"address"`
	Municipality    string          `json:"municipality"`
	AssessmentYear  int             `json:"assessment_year"`
	AssessmentValue decimal.Decimal `json:"assessment_value"`
	TaxRateYear     int             `json:"tax_rate_year"`
	MunicipalRate   decimal.Decimal `json:"municipal_rate"`
	EducationRate   decimal.Decimal `json:"education_rate"` // zero when education tax is excluded
	EstimatedTax    decimal.Decimal `json:"estimated_tax"`
}

// MunicipalPortion returns the municipal share of the estimate.
func (r PropertyTaxResult) MunicipalPortion() decimal.Decimal {
	return r.AssessmentValue.Mul(r.MunicipalRate).RoundBank(2)
}

// EducationPortion returns the education share of the estimate.
func (r PropertyTaxResult) EducationPortion() decimal.Decimal {
	return r.AssessmentValue.Mul(r.EducationRate).RoundBank(2)
}

// IncomeTaxResult is the outcome of an income tax calculation.
// FederalTax, OntarioTax and TotalTax are rounded to cents.
type IncomeTaxResult struct {
	Income        decimal.Decimal `json:"income"`
	RRSP          decimal.Decimal `json:"rrsp"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	FederalTax    decimal.Decimal `json:"federal_tax"`
	OntarioTax    decimal.Decimal `json:"ontario_tax"`
	TotalTax      decimal.Decimal `json:"total_tax"`
}

// EffectiveRate returns TotalTax as a fraction of Income, or zero when there
// is no income.
func (r IncomeTaxResult) EffectiveRate() decimal.Decimal {
	if !r.Income.IsPositive() {
		return decimal.Zero
	}
	return r.TotalTax.Div(r.Income)
}
