package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ontax-dev/ontax/internal/model"
	"github.com/ontax-dev/ontax/internal/propertytax"
	"github.com/ontax-dev/ontax/internal/report"
)

// numeric columns are right-aligned.
func newTable(numeric map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case numeric[col]:
				return NumberCellStyle
			default:
				return TableCellStyle
			}
		})
}

// PrintPropertyBatch prints warnings, a results table and the total.
func PrintPropertyBatch(w io.Writer, b propertytax.Batch) {
	for _, warn := range b.Warnings {
		fmt.Fprintln(w, FormatWarning(warn.Message))
	}
	if len(b.Results) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No properties could be estimated."))
		return
	}

	t := newTable(map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true, 8: true}).
		Headers("Roll Number", "Address", "Municipality", "Assessment Year", "Assessment Value",
			"Tax Rate Year", "Municipal Rate", "Education Rate", "Estimated Tax")
	for _, r := range b.Results {
		t.Row(
			r.RollNumber,
			r.Address,
			r.Municipality,
			strconv.Itoa(r.AssessmentYear),
			report.Money(r.AssessmentValue),
			strconv.Itoa(r.TaxRateYear),
			report.Rate(r.MunicipalRate),
			report.Rate(r.EducationRate),
			report.Money(r.EstimatedTax),
		)
	}

	fmt.Fprintln(w, FormatTitle("Property Tax Estimate"))
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, TotalStyle.Render("Total Estimated Tax (All Properties): "+report.Money(b.Total())))
}

// PrintIncome prints an income tax result as a two-column table.
func PrintIncome(w io.Writer, r model.IncomeTaxResult) {
	t := newTable(map[int]bool{1: true}).
		Headers("Item", "Amount").
		Row("Income", report.Money(r.Income)).
		Row("RRSP Contribution", report.Money(r.RRSP)).
		Row("Taxable Income", report.Money(r.TaxableIncome)).
		Row("Federal Tax", report.Money(r.FederalTax)).
		Row("Ontario Tax", report.Money(r.OntarioTax)).
		Row("Effective Rate", report.Rate(r.EffectiveRate()))

	fmt.Fprintln(w, FormatTitle("Personal Income Tax Estimate"))
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, TotalStyle.Render("Total Estimated Tax: "+report.Money(r.TotalTax)))
}
