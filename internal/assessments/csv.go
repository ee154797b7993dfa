package assessments

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ontax-dev/ontax/internal/model"
)

// Header is the CSV header for the assessments table.
const Header = "roll_number,address,municipality,property_class,tax_year,cva"

var columns = strings.Split(Header, ",")

const (
	numFields  = 6
	colRoll    = 0
	colAddress = 1
	colMuni    = 2
	colClass   = 3
	colTaxYear = 4
	colCVA     = 5
)

// ReadAssessments reads an assessments CSV, header row included. Columns are
// matched by name, so they may appear in any order; unknown columns are ignored.
func ReadAssessments(r io.Reader) ([]model.Assessment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading assessments CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	pos, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("unexpected assessments header %q: %w", strings.Join(records[0], ","), err)
	}

	var rows []model.Assessment
	for i, rec := range records[1:] {
		ordered, err := reorder(rec, pos)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		v, err := UnmarshalAssessment(ordered)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, v)
	}
	return rows, nil
}

// columnIndex maps each required column to its position in header. The first
// occurrence of a repeated name wins.
func columnIndex(header []string) ([numFields]int, error) {
	var pos [numFields]int
	for col, name := range columns {
		pos[col] = slices.IndexFunc(header, func(h string) bool {
			return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name
		})
		if pos[col] < 0 {
			return pos, fmt.Errorf("missing column %q", name)
		}
	}
	return pos, nil
}

// reorder picks the required fields out of rec in canonical column order.
func reorder(rec []string, pos [numFields]int) ([]string, error) {
	out := make([]string, numFields)
	for col, p := range pos {
		if p >= len(rec) {
			return nil, fmt.Errorf("missing %s", columns[col])
		}
		out[col] = rec[p]
	}
	return out, nil
}

// WriteAssessments writes an assessments CSV including the header.
func WriteAssessments(w io.Writer, rows []model.Assessment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range rows {
		if err := cw.Write(MarshalAssessment(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAssessment converts an Assessment to a CSV row.
func MarshalAssessment(a model.Assessment) []string {
	row := make([]string, numFields)
	row[colRoll] = a.RollNumber
	row[colAddress] = a.Address
	row[colMuni] = a.Municipality
	row[colClass] = string(a.PropertyClass)
	row[colTaxYear] = strconv.Itoa(a.TaxYear)
	row[colCVA] = a.CVA.String()
	return row
}

// UnmarshalAssessment converts a CSV row to an Assessment.
func UnmarshalAssessment(record []string) (model.Assessment, error) {
	if len(record) != numFields {
		return model.Assessment{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[colTaxYear]))
	if err != nil {
		return model.Assessment{}, fmt.Errorf("parsing tax_year %q: %w", record[colTaxYear], err)
	}

	cva, err := decimal.NewFromString(strings.TrimSpace(record[colCVA]))
	if err != nil {
		return model.Assessment{}, fmt.Errorf("parsing cva %q: %w", record[colCVA], err)
	}
	if cva.IsNegative() {
		return model.Assessment{}, fmt.Errorf("negative cva %s", cva)
	}

	return model.Assessment{
		RollNumber:    record[colRoll],
		Address:       record[colAddress],
		Municipality:  record[colMuni],
		PropertyClass: model.PropertyClass(record[colClass]),
		TaxYear:       year,
		CVA:           cva,
	}, nil
}
