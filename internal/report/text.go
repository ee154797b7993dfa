package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/model"
)

// TextRenderer writes a plain-text summary with a narrative line per result.
type TextRenderer struct{}

func (TextRenderer) Format() string      { return "text" }
func (TextRenderer) Extension() string   { return "txt" }
func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// RenderProperty writes one block per property followed by the total.
func (TextRenderer) RenderProperty(w io.Writer, results []model.PropertyTaxResult) error {
	ew := &errWriter{w: w}
	ew.printf("Ontario Property Tax Estimate Report\n\n")

	total := decimal.Zero
	for _, r := range results {
		ew.printf("Address: %s\n", r.Address)
		ew.printf("Roll Number: %s\n", r.RollNumber)
		ew.printf("Municipality: %s\n", r.Municipality)
		ew.printf("Assessment Year: %d\n", r.AssessmentYear)
		ew.printf("Assessment Value: %s\n", Money(r.AssessmentValue))
		ew.printf("Tax Rate Year: %d\n", r.TaxRateYear)
		ew.printf("Municipal Rate: %s\n", Rate(r.MunicipalRate))
		ew.printf("Education Rate: %s\n", Rate(r.EducationRate))
		ew.printf("Estimated Taxes: %s\n", Money(r.EstimatedTax))
		ew.printf("\nThe property located at %s (Roll: %s) is located in %s and is currently assessed at %s, which equates to estimated taxes of %s.\n\n",
			r.Address, r.RollNumber, r.Municipality, Money(r.AssessmentValue), Money(r.EstimatedTax))
		total = total.Add(r.EstimatedTax)
	}

	ew.printf("Total Estimated Tax (All Properties): %s\n", Money(total))
	ew.printf("\nThese figures are estimates only.\n")
	return ew.err
}

// RenderIncome writes the income tax summary and narrative.
func (TextRenderer) RenderIncome(w io.Writer, r model.IncomeTaxResult) error {
	ew := &errWriter{w: w}
	ew.printf("Ontario Personal Income Tax Estimate Report\n\n")
	ew.printf("Income: %s\n", Money(r.Income))
	ew.printf("RRSP Contribution: %s\n", Money(r.RRSP))
	ew.printf("Taxable Income: %s\n", Money(r.TaxableIncome))
	ew.printf("Federal Tax: %s\n", Money(r.FederalTax))
	ew.printf("Ontario Tax: %s\n", Money(r.OntarioTax))
	ew.printf("Total Tax: %s\n", Money(r.TotalTax))
	ew.printf("Effective Rate: %s\n", Rate(r.EffectiveRate()))
	ew.printf("\nBased on an annual income of %s and RRSP contribution of %s, the estimated total tax is %s.\n",
		Money(r.Income), Money(r.RRSP), Money(r.TotalTax))
	ew.printf("\nThese figures are estimates only.\n")
	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
