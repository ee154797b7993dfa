package assessments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontax-dev/ontax/internal/model"
)

func row(roll string, year int, cva int64, addr string) model.Assessment {
	return model.Assessment{
		RollNumber:    roll,
		Address:       addr,
		Municipality:  "Toronto",
		PropertyClass: "RT",
		TaxYear:       year,
		CVA:           decimal.NewFromInt(cva),
	}
}

func sampleTable() []model.Assessment {
	return []model.Assessment{
		row("R", 2022, 480000, "old"),
		row("R", 2024, 500000, "new"),
		row("S", 2023, 100000, "s-first"),
		row("S", 2023, 110000, "s-second"),
		row("R", 2023, 490000, "mid"),
	}
}

func TestSelectMostRecent(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		roll     string
		year     int
		wantYear int
		wantAddr string
	}{
		{"exact year", "R", 2022, 2022, "old"},
		{"no year picks latest", "R", 0, 2024, "new"},
		{"missing year falls back to latest", "R", 2019, 2024, "new"},
		{"duplicate year returns first", "S", 2023, 2023, "s-first"},
		{"duplicate max returns first", "S", 0, 2023, "s-first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectMostRecent(table, tt.roll, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, got.TaxYear)
			assert.Equal(t, tt.wantAddr, got.Address)
		})
	}
}

func TestSelectMostRecentNotFound(t *testing.T) {
	_, err := SelectMostRecent(sampleTable(), "missing", 2024)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SelectMostRecent(nil, "R", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectMostRecentExactMatchOnly(t *testing.T) {
	table := []model.Assessment{row("0191234567890123456", 2024, 1, "padded")}
	_, err := SelectMostRecent(table, "191234567890123456", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceMatchesFreeFunction(t *testing.T) {
	table := sampleTable()
	svc := NewService(table)

	assert.Equal(t, 5, svc.Len())
	assert.Len(t, svc.ForRoll("R"), 3)
	assert.Empty(t, svc.ForRoll("missing"))

	for _, roll := range []string{"R", "S", "missing"} {
		for _, year := range []int{0, 2022, 2023, 2024, 2030} {
			want, wantErr := SelectMostRecent(table, roll, year)
			got, gotErr := svc.SelectMostRecent(roll, year)
			assert.Equal(t, wantErr == nil, gotErr == nil, "roll=%s year=%d", roll, year)
			assert.Equal(t, want, got, "roll=%s year=%d", roll, year)
		}
	}
}

func TestLoad(t *testing.T) {
	svc, err := Load("../../testdata/assessments.csv")
	require.NoError(t, err)
	assert.Equal(t, 6, svc.Len())

	a, err := svc.SelectMostRecent("191234567890123456", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, a.TaxYear)
	assert.Equal(t, "500000", a.CVA.String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDuplicateKeys(t *testing.T) {
	assert.Equal(t, []string{"S/2023"}, DuplicateKeys(sampleTable()))
	assert.Empty(t, DuplicateKeys(sampleTable()[:2]))
}
