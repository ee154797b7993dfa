package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPropertyTaxResultPortions(t *testing.T) {
	r := PropertyTaxResult{
		AssessmentValue: decimal.NewFromInt(500000),
		MunicipalRate:   decimal.RequireFromString("0.01"),
		EducationRate:   decimal.RequireFromString("0.002"),
	}
	assert.Equal(t, "5000.00", r.MunicipalPortion().StringFixed(2))
	assert.Equal(t, "1000.00", r.EducationPortion().StringFixed(2))

	r.EducationRate = decimal.Zero
	assert.True(t, r.EducationPortion().IsZero())
}

func TestIncomeTaxResultEffectiveRate(t *testing.T) {
	tests := []struct {
		income string
		total  string
		want   string
	}{
		{"100000", "25000", "0.25"},
		{"0", "0", "0"},
		{"50000", "0", "0"},
	}
	for _, tt := range tests {
		r := IncomeTaxResult{
			Income:   decimal.RequireFromString(tt.income),
			TotalTax: decimal.RequireFromString(tt.total),
		}
		assert.True(t, decimal.RequireFromString(tt.want).Equal(r.EffectiveRate()),
			"EffectiveRate(%s, %s) = %s", tt.income, tt.total, r.EffectiveRate())
	}
}
