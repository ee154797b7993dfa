package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ontax-dev/ontax/internal/model"
)

const (
	propertySheet = "Property Tax"
	incomeSheet   = "Income Tax"

	numFmtMoney = 4 // #,##0.00
)

var rateFmt = "0.000%"

// XLSXRenderer writes results as an Excel workbook.
type XLSXRenderer struct{}

func (XLSXRenderer) Format() string    { return "xlsx" }
func (XLSXRenderer) Extension() string { return "xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type styles struct {
	header, money, rate, total int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return s, fmt.Errorf("creating money style: %w", err)
	}
	if s.rate, err = f.NewStyle(&excelize.Style{CustomNumFmt: &rateFmt}); err != nil {
		return s, fmt.Errorf("creating rate style: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: numFmtMoney}); err != nil {
		return s, fmt.Errorf("creating total style: %w", err)
	}
	return s, nil
}

// setRow writes values into row starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// RenderProperty writes a sheet with one row per result and a totals row.
func (XLSXRenderer) RenderProperty(w io.Writer, results []model.PropertyTaxResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", propertySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	headers := []any{
		"Roll Number", "Address", "Municipality", "Assessment Year", "Assessment Value",
		"Tax Rate Year", "Municipal Rate", "Education Rate", "Municipal Tax", "Education Tax", "Estimated Tax",
	}
	if err := setRow(f, propertySheet, 1, headers...); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetRowStyle(propertySheet, 1, 1, st.header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range results {
		row := i + 2
		if err := setRow(f, propertySheet, row,
			r.RollNumber,
			r.Address,
			r.Municipality,
			r.AssessmentYear,
			r.AssessmentValue.InexactFloat64(),
			r.TaxRateYear,
			r.MunicipalRate.InexactFloat64(),
			r.EducationRate.InexactFloat64(),
			r.MunicipalPortion().InexactFloat64(),
			r.EducationPortion().InexactFloat64(),
			r.EstimatedTax.InexactFloat64(),
		); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}

	last := len(results) + 1
	if len(results) > 0 {
		for _, rng := range []struct {
			from, to string
			style    int
		}{
			{"E2", fmt.Sprintf("E%d", last), st.money},
			{"G2", fmt.Sprintf("H%d", last), st.rate},
			{"I2", fmt.Sprintf("K%d", last), st.money},
		} {
			if err := f.SetCellStyle(propertySheet, rng.from, rng.to, rng.style); err != nil {
				return fmt.Errorf("styling %s:%s: %w", rng.from, rng.to, err)
			}
		}
	}

	totalRow := last + 1
	if err := f.SetCellValue(propertySheet, fmt.Sprintf("J%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("writing total label: %w", err)
	}
	totalCell := fmt.Sprintf("K%d", totalRow)
	if len(results) > 0 {
		err = f.SetCellFormula(propertySheet, totalCell, fmt.Sprintf("SUM(K2:K%d)", last))
	} else {
		err = f.SetCellValue(propertySheet, totalCell, 0)
	}
	if err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := f.SetCellStyle(propertySheet, fmt.Sprintf("J%d", totalRow), totalCell, st.total); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}

	if err := f.SetColWidth(propertySheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(propertySheet, "B", "C", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(propertySheet, "D", "K", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// RenderIncome writes a two-column label/value sheet.
func (XLSXRenderer) RenderIncome(w io.Writer, r model.IncomeTaxResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", incomeSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Item", "Amount"},
		{"Income", r.Income.InexactFloat64()},
		{"RRSP Contribution", r.RRSP.InexactFloat64()},
		{"Taxable Income", r.TaxableIncome.InexactFloat64()},
		{"Federal Tax", r.FederalTax.InexactFloat64()},
		{"Ontario Tax", r.OntarioTax.InexactFloat64()},
		{"Total Tax", r.TotalTax.InexactFloat64()},
		{"Effective Rate", r.EffectiveRate().InexactFloat64()},
	}
	for i, values := range rows {
		if err := setRow(f, incomeSheet, i+1, values...); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetRowStyle(incomeSheet, 1, 1, st.header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetCellStyle(incomeSheet, "B2", "B6", st.money); err != nil {
		return fmt.Errorf("styling amounts: %w", err)
	}
	if err := f.SetCellStyle(incomeSheet, "A7", "B7", st.total); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}
	if err := f.SetCellStyle(incomeSheet, "B8", "B8", st.rate); err != nil {
		return fmt.Errorf("styling rate: %w", err)
	}
	if err := f.SetColWidth(incomeSheet, "A", "B", 22); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
