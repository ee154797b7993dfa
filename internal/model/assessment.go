package model

import "github.com/shopspring/decimal"

// PropertyClass is the MPAC property class code, e.g. "RT" (residential).
type PropertyClass string

// Assessment represents a row in the assessments reference table.
// (RollNumber, TaxYear) is unique within a table.
type Assessment struct {
	RollNumber    string // digits only, never parsed as a number
	Address       string
	Municipality  string
	PropertyClass PropertyClass
	TaxYear       int
	CVA           decimal.Decimal // current value assessment
}
