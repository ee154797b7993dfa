package cli

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ontax-dev/ontax/internal/model"
	"github.com/ontax-dev/ontax/internal/propertytax"
)

func TestPrintPropertyBatch(t *testing.T) {
	b := propertytax.Batch{
		Results: []model.PropertyTaxResult{{
			RollNumber:      "191234567890123456",
			Address:         "12 Main St",
			Municipality:    "Toronto",
			AssessmentYear:  2024,
			AssessmentValue: decimal.NewFromInt(500000),
			TaxRateYear:     2024,
			MunicipalRate:   decimal.RequireFromString("0.01"),
			EducationRate:   decimal.RequireFromString("0.002"),
			EstimatedTax:    decimal.RequireFromString("6000"),
		}},
		Warnings: []propertytax.Warning{{Input: "12345", Kind: propertytax.WarningInvalidRoll, Message: "Invalid roll number: 12345"}},
	}

	var buf bytes.Buffer
	PrintPropertyBatch(&buf, b)
	out := buf.String()

	assert.Contains(t, out, "Invalid roll number: 12345")
	assert.Contains(t, out, "191234567890123456")
	assert.Contains(t, out, "$500,000.00")
	assert.Contains(t, out, "1.000%")
	assert.Contains(t, out, "Total Estimated Tax (All Properties): $6,000.00")
}

func TestPrintPropertyBatchNoResults(t *testing.T) {
	var buf bytes.Buffer
	PrintPropertyBatch(&buf, propertytax.Batch{})
	assert.Contains(t, buf.String(), "No properties could be estimated.")
}

func TestPrintIncome(t *testing.T) {
	var buf bytes.Buffer
	PrintIncome(&buf, model.IncomeTaxResult{
		Income:        decimal.NewFromInt(60000),
		TaxableIncome: decimal.NewFromInt(60000),
		FederalTax:    decimal.RequireFromString("9258.50"),
		OntarioTax:    decimal.RequireFromString("3431.92"),
		TotalTax:      decimal.RequireFromString("12690.42"),
	})
	out := buf.String()

	assert.Contains(t, out, "Federal Tax")
	assert.Contains(t, out, "$9,258.50")
	assert.Contains(t, out, "Total Estimated Tax: $12,690.42")
}
