package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ontax-dev/ontax/internal/model"
)

var (
	propertyHeader = []string{
		"roll_number", "address", "municipality", "assessment_year", "assessment_value",
		"tax_rate_year", "municipal_rate", "education_rate", "estimated_tax",
	}
	incomeHeader = []string{"income", "rrsp", "taxable_income", "federal_tax", "ontario_tax", "total_tax"}
)

// CSVRenderer writes results as CSV with machine-readable numbers.
type CSVRenderer struct{}

func (CSVRenderer) Format() string      { return "csv" }
func (CSVRenderer) Extension() string   { return "csv" }
func (CSVRenderer) ContentType() string { return "text/csv" }

// RenderProperty writes one row per result.
func (CSVRenderer) RenderProperty(w io.Writer, results []model.PropertyTaxResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(propertyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range results {
		row := []string{
			r.RollNumber,
			r.Address,
			r.Municipality,
			strconv.Itoa(r.AssessmentYear),
			r.AssessmentValue.StringFixed(2),
			strconv.Itoa(r.TaxRateYear),
			r.MunicipalRate.String(),
			r.EducationRate.String(),
			r.EstimatedTax.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderIncome writes a single data row.
func (CSVRenderer) RenderIncome(w io.Writer, r model.IncomeTaxResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(incomeHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := []string{
		r.Income.StringFixed(2),
		r.RRSP.StringFixed(2),
		r.TaxableIncome.StringFixed(2),
		r.FederalTax.StringFixed(2),
		r.OntarioTax.StringFixed(2),
		r.TotalTax.StringFixed(2),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
