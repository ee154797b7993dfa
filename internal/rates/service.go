package rates

import (
	"errors"
	"fmt"
	"os"

	"github.com/ontax-dev/ontax/internal/model"
)

// ErrNotFound is returned when no rate exists for a municipality and class.
var ErrNotFound = errors.New("tax rate not found")

// SelectLatest picks the rate for (municipality, propertyClass) from table.
// Year preference and tie-breaking match assessments.SelectMostRecent.
func SelectLatest(table []model.TaxRate, municipality string, propertyClass model.PropertyClass, year int) (model.TaxRate, error) {
	var (
		latest model.TaxRate
		found  bool
	)
	for _, r := range table {
		if r.Municipality != municipality || r.PropertyClass != propertyClass {
			continue
		}
		if year != 0 && r.Year == year {
			return r, nil
		}
		if !found || r.Year > latest.Year {
			latest = r
			found = true
		}
	}
	if !found {
		return model.TaxRate{}, fmt.Errorf("%w for %s/%s", ErrNotFound, municipality, propertyClass)
	}
	return latest, nil
}

// Service provides indexed lookup over a tax rates table.
type Service struct {
	rows  []model.TaxRate
	byKey map[model.RateKey][]model.TaxRate
}

// NewService creates a Service from a slice of rates.
func NewService(rows []model.TaxRate) *Service {
	byKey := make(map[model.RateKey][]model.TaxRate)
	for _, r := range rows {
		byKey[r.Key()] = append(byKey[r.Key()], r)
	}
	return &Service{rows: rows, byKey: byKey}
}

// Load reads a tax rates CSV from path and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rates: %w", err)
	}
	defer f.Close()

	rows, err := ReadRates(f)
	if err != nil {
		return nil, fmt.Errorf("reading rates %s: %w", path, err)
	}
	return NewService(rows), nil
}

// All returns every row in load order.
func (s *Service) All() []model.TaxRate {
	return s.rows
}

// Len returns the number of rows.
func (s *Service) Len() int {
	return len(s.rows)
}

// Municipalities returns the distinct municipalities in load order.
func (s *Service) Municipalities() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range s.rows {
		if !seen[r.Municipality] {
			seen[r.Municipality] = true
			out = append(out, r.Municipality)
		}
	}
	return out
}

// SelectLatest is the indexed form of the package-level SelectLatest.
func (s *Service) SelectLatest(municipality string, propertyClass model.PropertyClass, year int) (model.TaxRate, error) {
	key := model.RateKey{Municipality: municipality, PropertyClass: propertyClass}
	return SelectLatest(s.byKey[key], municipality, propertyClass, year)
}

// DuplicateKeys returns "municipality/class/year" for every key that appears
// more than once, in order of second appearance.
func DuplicateKeys(rows []model.TaxRate) []string {
	type key struct {
		model.RateKey
		year int
	}
	seen := make(map[key]int)
	var dups []string
	for _, r := range rows {
		k := key{r.Key(), r.Year}
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, fmt.Sprintf("%s/%s/%d", r.Municipality, r.PropertyClass, r.Year))
		}
	}
	return dups
}
