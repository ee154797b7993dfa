// Package refstore keeps the assessments and tax rates reference tables in a
// SQLite database as an alternative to the flat CSV files.
package refstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	roll_number    TEXT    NOT NULL,
	address        TEXT    NOT NULL,
	municipality   TEXT    NOT NULL,
	property_class TEXT    NOT NULL,
	tax_year       INTEGER NOT NULL,
	cva            TEXT    NOT NULL,
	PRIMARY KEY (roll_number, tax_year)
);
CREATE TABLE IF NOT EXISTS tax_rates (
	municipality   TEXT    NOT NULL,
	property_class TEXT    NOT NULL,
	year           INTEGER NOT NULL,
	municipal_rate TEXT    NOT NULL,
	education_rate TEXT    NOT NULL,
	PRIMARY KEY (municipality, property_class, year)
);`

// Store is a SQLite-backed reference table store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReplaceAll swaps the contents of both tables in a single transaction.
func (s *Store) ReplaceAll(ctx context.Context, assessments []model.Assessment, rates []model.TaxRate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assessments"); err != nil {
		return fmt.Errorf("clearing assessments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tax_rates"); err != nil {
		return fmt.Errorf("clearing tax rates: %w", err)
	}

	insA, err := tx.PrepareContext(ctx, `INSERT INTO assessments
		(roll_number, address, municipality, property_class, tax_year, cva)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing assessment insert: %w", err)
	}
	defer insA.Close()

	for i, a := range assessments {
		if _, err := insA.ExecContext(ctx, a.RollNumber, a.Address, a.Municipality,
			string(a.PropertyClass), a.TaxYear, a.CVA.String()); err != nil {
			return fmt.Errorf("inserting assessment %d (%s/%d): %w", i, a.RollNumber, a.TaxYear, err)
		}
	}

	insR, err := tx.PrepareContext(ctx, `INSERT INTO tax_rates
		(municipality, property_class, year, municipal_rate, education_rate)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing rate insert: %w", err)
	}
	defer insR.Close()

	for i, r := range rates {
		if _, err := insR.ExecContext(ctx, r.Municipality, string(r.PropertyClass), r.Year,
			r.MunicipalRate.String(), r.EducationRate.String()); err != nil {
			return fmt.Errorf("inserting rate %d (%s/%s/%d): %w", i, r.Municipality, r.PropertyClass, r.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Assessments returns every assessment row in insertion order.
func (s *Store) Assessments(ctx context.Context) ([]model.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT roll_number, address, municipality, property_class, tax_year, cva
		FROM assessments ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		var (
			a          model.Assessment
			class, cva string
		)
		if err := rows.Scan(&a.RollNumber, &a.Address, &a.Municipality, &class, &a.TaxYear, &cva); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		a.PropertyClass = model.PropertyClass(class)
		if a.CVA, err = decimal.NewFromString(cva); err != nil {
			return nil, fmt.Errorf("parsing cva %q for %s: %w", cva, a.RollNumber, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Rates returns every tax rate row in insertion order.
func (s *Store) Rates(ctx context.Context) ([]model.TaxRate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT municipality, property_class, year, municipal_rate, education_rate
		FROM tax_rates ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying tax rates: %w", err)
	}
	defer rows.Close()

	var out []model.TaxRate
	for rows.Next() {
		var (
			r                           model.TaxRate
			class, municipal, education string
		)
		if err := rows.Scan(&r.Municipality, &class, &r.Year, &municipal, &education); err != nil {
			return nil, fmt.Errorf("scanning tax rate: %w", err)
		}
		r.PropertyClass = model.PropertyClass(class)
		if r.MunicipalRate, err = decimal.NewFromString(municipal); err != nil {
			return nil, fmt.Errorf("parsing municipal_rate %q: %w", municipal, err)
		}
		if r.EducationRate, err = decimal.NewFromString(education); err != nil {
			return nil, fmt.Errorf("parsing education_rate %q: %w", education, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Counts returns the number of assessment and rate rows.
func (s *Store) Counts(ctx context.Context) (assessments, rates int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&assessments); err != nil {
		return 0, 0, fmt.Errorf("counting assessments: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tax_rates").Scan(&rates); err != nil {
		return 0, 0, fmt.Errorf("counting tax rates: %w", err)
	}
	return assessments, rates, nil
}
