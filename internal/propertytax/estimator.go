package propertytax

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/assessments"
	"github.com/ontax-dev/ontax/internal/model"
	"github.com/ontax-dev/ontax/internal/rates"
	"github.com/ontax-dev/ontax/internal/rollnumber"
)

// AssessmentLookup selects the assessment for a roll number.
type AssessmentLookup interface {
	SelectMostRecent(roll string, year int) (model.Assessment, error)
}

// RateLookup selects the rate for a municipality and property class.
type RateLookup interface {
	SelectLatest(municipality string, propertyClass model.PropertyClass, year int) (model.TaxRate, error)
}

// Options control a property tax estimate.
type Options struct {
	Year             int // preferred assessment and rate year; 0 means latest
	IncludeEducation bool
}

// WarningKind classifies why a roll number produced no result.
type WarningKind string

const (
	WarningInvalidRoll        WarningKind = "invalid_roll_number"
	WarningAssessmentNotFound WarningKind = "assessment_not_found"
	WarningRateNotFound       WarningKind = "rate_not_found"
)

// Warning describes one batch entry that was skipped.
type Warning struct {
	Input   string      `json:"input"`
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Batch holds the outcome of estimating several roll numbers.
type Batch struct {
	Results  []model.PropertyTaxResult `json:"results"`
	Warnings []Warning                 `json:"warnings"`
}

// Total returns the sum of estimated tax over all results.
func (b Batch) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range b.Results {
		total = total.Add(r.EstimatedTax)
	}
	return total
}

// Estimator runs the roll number -> assessment -> rate -> tax pipeline.
// It holds no mutable state and may be shared between goroutines.
type Estimator struct {
	assessments AssessmentLookup
	rates       RateLookup
}

// NewEstimator creates an Estimator over the given lookups.
func NewEstimator(a AssessmentLookup, r RateLookup) *Estimator {
	return &Estimator{assessments: a, rates: r}
}

// EstimateRoll estimates a single raw roll number. The returned error wraps
// rollnumber.ErrInvalid, assessments.ErrNotFound or rates.ErrNotFound.
func (e *Estimator) EstimateRoll(raw string, opts Options) (model.PropertyTaxResult, error) {
	roll, err := rollnumber.Parse(raw)
	if err != nil {
		return model.PropertyTaxResult{}, err
	}

	a, err := e.assessments.SelectMostRecent(roll, opts.Year)
	if err != nil {
		return model.PropertyTaxResult{}, fmt.Errorf("roll %s: %w", roll, err)
	}

	rate, err := e.rates.SelectLatest(a.Municipality, a.PropertyClass, opts.Year)
	if err != nil {
		return model.PropertyTaxResult{}, fmt.Errorf("roll %s: %w", roll, err)
	}

	education := rate.EducationRate
	if !opts.IncludeEducation {
		education = decimal.Zero
	}

	return model.PropertyTaxResult{
		RollNumber:      roll,
		Address:         a.Address,
		Municipality:    a.Municipality,
		AssessmentYear:  a.TaxYear,
		AssessmentValue: a.CVA,
		TaxRateYear:     rate.Year,
		MunicipalRate:   rate.MunicipalRate,
		EducationRate:   education,
		EstimatedTax:    Estimate(a.CVA, rate.MunicipalRate, education),
	}, nil
}

// EstimateBatch estimates every raw roll number in order. Entries that fail
// are reported as warnings and do not stop the batch. progress, if non-nil,
// is called once per entry.
func (e *Estimator) EstimateBatch(raws []string, opts Options, progress func()) Batch {
	var b Batch
	for _, raw := range raws {
		res, err := e.EstimateRoll(raw, opts)
		if err != nil {
			w := warningFor(raw, err)
			slog.Debug("skipping roll number", "input", raw, "kind", string(w.Kind))
			b.Warnings = append(b.Warnings, w)
		} else {
			b.Results = append(b.Results, res)
		}
		if progress != nil {
			progress()
		}
	}
	return b
}

func warningFor(raw string, err error) Warning {
	w := Warning{Input: raw}
	switch {
	case errors.Is(err, rollnumber.ErrInvalid):
		w.Kind = WarningInvalidRoll
		w.Message = "Invalid roll number: " + raw
	case errors.Is(err, assessments.ErrNotFound):
		w.Kind = WarningAssessmentNotFound
		w.Message = "No assessment found for " + rollnumber.Normalize(raw)
	case errors.Is(err, rates.ErrNotFound):
		w.Kind = WarningRateNotFound
		w.Message = "No tax rate found for " + rollnumber.Normalize(raw)
	default:
		w.Message = err.Error()
	}
	return w
}
