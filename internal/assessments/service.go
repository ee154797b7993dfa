package assessments

import (
	"errors"
	"fmt"
	"os"

	"github.com/ontax-dev/ontax/internal/model"
)

// ErrNotFound is returned when no assessment exists for a roll number.
var ErrNotFound = errors.New("assessment not found")

// SelectMostRecent picks the assessment for roll from table. When year is
// non-zero and a row for that tax year exists, the first such row wins;
// otherwise the row with the latest tax year is returned.
func SelectMostRecent(table []model.Assessment, roll string, year int) (model.Assessment, error) {
	var (
		latest model.Assessment
		found  bool
	)
	for _, a := range table {
		if a.RollNumber != roll {
			continue
		}
		if year != 0 && a.TaxYear == year {
			return a, nil
		}
		if !found || a.TaxYear > latest.TaxYear {
			latest = a
			found = true
		}
	}
	if !found {
		return model.Assessment{}, fmt.Errorf("%w for %s", ErrNotFound, roll)
	}
	return latest, nil
}

// Service provides indexed lookup over an assessments table.
// It is read-only after construction.
type Service struct {
	rows   []model.Assessment
	byRoll map[string][]model.Assessment
}

// NewService creates a Service from a slice of assessments.
func NewService(rows []model.Assessment) *Service {
	byRoll := make(map[string][]model.Assessment)
	for _, a := range rows {
		byRoll[a.RollNumber] = append(byRoll[a.RollNumber], a)
	}
	return &Service{rows: rows, byRoll: byRoll}
}

// Load reads an assessments CSV from path and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening assessments: %w", err)
	}
	defer f.Close()

	rows, err := ReadAssessments(f)
	if err != nil {
		return nil, fmt.Errorf("reading assessments %s: %w", path, err)
	}
	return NewService(rows), nil
}

// All returns every row in load order.
func (s *Service) All() []model.Assessment {
	return s.rows
}

// Len returns the number of rows.
func (s *Service) Len() int {
	return len(s.rows)
}

// ForRoll returns all rows for a roll number in load order.
func (s *Service) ForRoll(roll string) []model.Assessment {
	return s.byRoll[roll]
}

// SelectMostRecent is the indexed form of the package-level SelectMostRecent.
func (s *Service) SelectMostRecent(roll string, year int) (model.Assessment, error) {
	return SelectMostRecent(s.ForRoll(roll), roll, year)
}

// DuplicateKeys returns "roll/year" for every (roll number, tax year) pair
// that appears more than once, in order of second appearance.
func DuplicateKeys(rows []model.Assessment) []string {
	type key struct {
		roll string
		year int
	}
	seen := make(map[key]int)
	var dups []string
	for _, a := range rows {
		k := key{a.RollNumber, a.TaxYear}
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, fmt.Sprintf("%s/%d", a.RollNumber, a.TaxYear))
		}
	}
	return dups
}
