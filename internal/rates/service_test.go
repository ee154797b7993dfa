package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontax-dev/ontax/internal/model"
)

func rate(muni string, class model.PropertyClass, year int, municipal string) model.TaxRate {
	return model.TaxRate{
		Municipality:  muni,
		PropertyClass: class,
		Year:          year,
		MunicipalRate: decimal.RequireFromString(municipal),
		EducationRate: decimal.RequireFromString("0.00153"),
	}
}

func sampleTable() []model.TaxRate {
	return []model.TaxRate{
		rate("Toronto", "RT", 2023, "0.00458"),
		rate("Toronto", "RT", 2024, "0.01"),
		rate("Toronto", "CT", 2024, "0.02"),
		rate("Ottawa", "RT", 2024, "0.009"),
		rate("Ottawa", "RT", 2024, "0.0095"),
	}
}

func TestSelectLatest(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name      string
		muni      string
		class     model.PropertyClass
		year      int
		wantYear  int
		wantMunic string
	}{
		{"exact year", "Toronto", "RT", 2023, 2023, "0.00458"},
		{"no year picks latest", "Toronto", "RT", 0, 2024, "0.01"},
		{"missing year falls back", "Toronto", "RT", 2020, 2024, "0.01"},
		{"class is part of the key", "Toronto", "CT", 0, 2024, "0.02"},
		{"duplicate year returns first", "Ottawa", "RT", 2024, 2024, "0.009"},
		{"duplicate max returns first", "Ottawa", "RT", 0, 2024, "0.009"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectLatest(table, tt.muni, tt.class, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, got.Year)
			assert.Equal(t, tt.wantMunic, got.MunicipalRate.String())
		})
	}
}

func TestSelectLatestNotFound(t *testing.T) {
	table := sampleTable()

	_, err := SelectLatest(table, "Nowhere", "RT", 2024)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SelectLatest(table, "Ottawa", "IT", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SelectLatest(table, "toronto", "RT", 0)
	assert.ErrorIs(t, err, ErrNotFound, "municipality match is exact")
}

func TestServiceMatchesFreeFunction(t *testing.T) {
	table := sampleTable()
	svc := NewService(table)

	assert.Equal(t, 5, svc.Len())
	assert.Equal(t, []string{"Toronto", "Ottawa"}, svc.Municipalities())

	keys := []model.RateKey{
		{Municipality: "Toronto", PropertyClass: "RT"},
		{Municipality: "Toronto", PropertyClass: "CT"},
		{Municipality: "Ottawa", PropertyClass: "RT"},
		{Municipality: "Nowhere", PropertyClass: "RT"},
	}
	for _, k := range keys {
		for _, year := range []int{0, 2023, 2024, 2030} {
			want, wantErr := SelectLatest(table, k.Municipality, k.PropertyClass, year)
			got, gotErr := svc.SelectLatest(k.Municipality, k.PropertyClass, year)
			assert.Equal(t, wantErr == nil, gotErr == nil, "%v year=%d", k, year)
			assert.Equal(t, want, got, "%v year=%d", k, year)
		}
	}
}

func TestLoad(t *testing.T) {
	svc, err := Load("../../testdata/rates.csv")
	require.NoError(t, err)
	assert.Equal(t, 6, svc.Len())

	r, err := svc.SelectLatest("Ottawa", "RT", 2023)
	require.NoError(t, err)
	assert.Equal(t, "0.00869", r.MunicipalRate.String())
}

func TestDuplicateKeys(t *testing.T) {
	assert.Equal(t, []string{"Ottawa/RT/2024"}, DuplicateKeys(sampleTable()))
	assert.Empty(t, DuplicateKeys(sampleTable()[:4]))
}
