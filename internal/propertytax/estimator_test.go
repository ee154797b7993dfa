package propertytax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontax-dev/ontax/internal/assessments"
	"github.com/ontax-dev/ontax/internal/rates"
	"github.com/ontax-dev/ontax/internal/rollnumber"
)

func loadEstimator(t *testing.T) *Estimator {
	t.Helper()
	a, err := assessments.Load("../../testdata/assessments.csv")
	require.NoError(t, err)
	r, err := rates.Load("../../testdata/rates.csv")
	require.NoError(t, err)
	return NewEstimator(a, r)
}

func TestEstimateRoll(t *testing.T) {
	e := loadEstimator(t)

	res, err := e.EstimateRoll("19-12 34-567-890123456", Options{Year: 2024, IncludeEducation: true})
	require.NoError(t, err)

	assert.Equal(t, "191234567890123456", res.RollNumber)
	assert.Equal(t, "12 Main St", res.Address)
	assert.Equal(t, "Toronto", res.Municipality)
	assert.Equal(t, 2024, res.AssessmentYear)
	assert.Equal(t, "500000", res.AssessmentValue.String())
	assert.Equal(t, 2024, res.TaxRateYear)
	assert.Equal(t, "0.01", res.MunicipalRate.String())
	assert.Equal(t, "0.002", res.EducationRate.String())
	assert.Equal(t, "6000.00", res.EstimatedTax.StringFixed(2))
}

func TestEstimateRollExcludeEducation(t *testing.T) {
	e := loadEstimator(t)

	res, err := e.EstimateRoll("191234567890123456", Options{Year: 2024})
	require.NoError(t, err)
	assert.True(t, res.EducationRate.IsZero())
	assert.Equal(t, "5000.00", res.EstimatedTax.StringFixed(2))
}

func TestEstimateRollYearPreference(t *testing.T) {
	e := loadEstimator(t)

	// 2022 assessment exists, 2022 rate does not: rate falls back to 2024.
	res, err := e.EstimateRoll("191234567890123456", Options{Year: 2022, IncludeEducation: true})
	require.NoError(t, err)
	assert.Equal(t, 2022, res.AssessmentYear)
	assert.Equal(t, "480000", res.AssessmentValue.String())
	assert.Equal(t, 2024, res.TaxRateYear)
	assert.Equal(t, "5760.00", res.EstimatedTax.StringFixed(2))

	// No year: latest of both.
	res, err = e.EstimateRoll("001901010030123450", Options{IncludeEducation: true})
	require.NoError(t, err)
	assert.Equal(t, 2023, res.AssessmentYear)
	assert.Equal(t, 2024, res.TaxRateYear)
}

func TestEstimateRollErrors(t *testing.T) {
	e := loadEstimator(t)

	_, err := e.EstimateRoll("12345", Options{})
	assert.ErrorIs(t, err, rollnumber.ErrInvalid)

	_, err = e.EstimateRoll("999999999999999999", Options{})
	assert.ErrorIs(t, err, assessments.ErrNotFound)

	_, err = e.EstimateRoll("190401020304050608", Options{})
	assert.ErrorIs(t, err, rates.ErrNotFound)
}

func TestEstimateBatch(t *testing.T) {
	e := loadEstimator(t)

	raws := []string{
		"191234567890123456",
		"12345",
		"191234567890123457",
		"999999999999999999",
		"190401020304050608",
	}
	calls := 0
	b := e.EstimateBatch(raws, Options{Year: 2024, IncludeEducation: true}, func() { calls++ })

	assert.Equal(t, len(raws), calls)
	require.Len(t, b.Results, 2)
	assert.Equal(t, "191234567890123456", b.Results[0].RollNumber)
	assert.Equal(t, "191234567890123457", b.Results[1].RollNumber)

	require.Len(t, b.Warnings, 3)
	assert.Equal(t, WarningInvalidRoll, b.Warnings[0].Kind)
	assert.Equal(t, "Invalid roll number: 12345", b.Warnings[0].Message)
	assert.Equal(t, WarningAssessmentNotFound, b.Warnings[1].Kind)
	assert.Equal(t, "No assessment found for 999999999999999999", b.Warnings[1].Message)
	assert.Equal(t, WarningRateNotFound, b.Warnings[2].Kind)
	assert.Equal(t, "No tax rate found for 190401020304050608", b.Warnings[2].Message)

	// 6000 + 720000*0.012
	assert.True(t, decimal.RequireFromString("14640").Equal(b.Total()), "total %s", b.Total())
}

func TestEstimateBatchEmpty(t *testing.T) {
	e := loadEstimator(t)
	b := e.EstimateBatch(nil, Options{}, nil)
	assert.Empty(t, b.Results)
	assert.Empty(t, b.Warnings)
	assert.True(t, b.Total().IsZero())
}
