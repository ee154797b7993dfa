package refstore

import (
	"context"
	"fmt"

	"github.com/ontax-dev/ontax/internal/assessments"
	"github.com/ontax-dev/ontax/internal/rates"
)

// Tables bundles both reference tables, indexed and read-only.
type Tables struct {
	Assessments *assessments.Service
	Rates       *rates.Service
}

// LoadCSV reads both tables from flat files.
func LoadCSV(assessmentsPath, ratesPath string) (*Tables, error) {
	a, err := assessments.Load(assessmentsPath)
	if err != nil {
		return nil, err
	}
	r, err := rates.Load(ratesPath)
	if err != nil {
		return nil, err
	}
	return &Tables{Assessments: a, Rates: r}, nil
}

// LoadSQLite reads both tables from the database at path.
func LoadSQLite(ctx context.Context, path string) (*Tables, error) {
	s, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Tables(ctx)
}

// Tables reads both tables from the store.
func (s *Store) Tables(ctx context.Context) (*Tables, error) {
	a, err := s.Assessments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assessments from %s: %w", s.path, err)
	}
	r, err := s.Rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tax rates from %s: %w", s.path, err)
	}
	return &Tables{Assessments: assessments.NewService(a), Rates: rates.NewService(r)}, nil
}
