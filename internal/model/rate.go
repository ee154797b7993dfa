package model

import "github.com/shopspring/decimal"

// TaxRate represents a row in the tax rates reference table.
// Rates are fractions: 0.01 means 1%.
type TaxRate struct {
	Municipality  string
	PropertyClass PropertyClass
	Year          int
	MunicipalRate decimal.Decimal
	EducationRate decimal.Decimal
}

// RateKey identifies the rate rows that apply to one kind of property.
type RateKey struct {
	Municipality  string
	PropertyClass PropertyClass
}

// Key returns the lookup key for the rate.
func (r TaxRate) Key() RateKey {
	return RateKey{Municipality: r.Municipality, PropertyClass: r.PropertyClass}
}
