package rates

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

// Header is the CSV header for the tax rates table.
const Header = "municipality,property_class,year,municipal_rate,education_rate"

var columns = strings.Split(Header, ",")

const (
	numFields    = 5
	colMuni      = 0
	colClass     = 1
	colYear      = 2
	colMunicipal = 3
	colEducation = 4
)

// ReadRates reads a tax rates CSV, header row included. Columns are matched
// by name, so they may appear in any order; unknown columns are ignored.
func ReadRates(r io.Reader) ([]model.TaxRate, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rates CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	pos, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("unexpected rates header %q: %w", strings.Join(records[0], ","), err)
	}

	var rows []model.TaxRate
	for i, rec := range records[1:] {
		ordered, err := reorder(rec, pos)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		v, err := UnmarshalRate(ordered)
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

// WriteRates writes a tax rates CSV including the header.
func WriteRates(w io.Writer, rows []model.TaxRate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rate := range rows {
		if err := cw.Write(MarshalRate(rate)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRate converts a TaxRate to a CSV row.
func MarshalRate(rate model.TaxRate) []string {
	row := make([]string, numFields)
	row[colMuni] = rate.Municipality
	row[colClass] = string(rate.PropertyClass)
	row[colYear] = strconv.Itoa(rate.Year)
	row[colMunicipal] = rate.MunicipalRate.String()
	row[colEducation] = rate.EducationRate.String()
	return row
}

// UnmarshalRate converts a CSV row to a TaxRate.
func UnmarshalRate(record []string) (model.TaxRate, error) {
	if len(record) != numFields {
		return model.TaxRate{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[colYear]))
	if err != nil {
		return model.TaxRate{}, fmt.Errorf("parsing year %q: %w", record[colYear], err)
	}

	municipal, err := decimal.NewFromString(strings.TrimSpace(record[colMunicipal]))
	if err != nil {
		return model.TaxRate{}, fmt.Errorf("parsing municipal_rate %q: %w", record[colMunicipal], err)
	}

	education, err := decimal.NewFromString(strings.TrimSpace(record[colEducation]))
	if err != nil {
		return model.TaxRate{}, fmt.Errorf("parsing education_rate %q: %w", record[colEducation], err)
	}

	return model.TaxRate{
		Municipality:  record[colMuni],
		PropertyClass: model.PropertyClass(record[colClass]),
		Year:          year,
		MunicipalRate: municipal,
		EducationRate: education,
	}, nil
}
