package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Data.SQLite = "data/ontax.db"
	cfg.Defaults.TaxYear = 2023
	cfg.Defaults.IncludeEducation = false
	cfg.Output.Format = "xlsx"

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "assessments.csv"), got.Data.Assessments)
	assert.Equal(t, filepath.Join(dir, "data", "rates.csv"), got.Data.Rates)
	assert.Equal(t, filepath.Join(dir, "data", "ontax.db"), got.Data.SQLite)
	assert.Equal(t, 2023, got.Defaults.TaxYear)
	assert.False(t, got.Defaults.IncludeEducation)
	assert.Equal(t, filepath.Join(dir, "outputs"), got.Output.Dir)
	assert.Equal(t, "xlsx", got.Output.Format)
	assert.Equal(t, ":8080", got.Server.Addr)
	assert.Equal(t, "info", got.Logging.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("data", "assessments.csv"), cfg.Data.Assessments)
	assert.Equal(t, filepath.Join("data", "rates.csv"), cfg.Data.Rates)
	assert.Empty(t, cfg.Data.SQLite)
	assert.Equal(t, 2024, cfg.Defaults.TaxYear)
	assert.True(t, cfg.Defaults.IncludeEducation)
	assert.Equal(t, "outputs", cfg.Output.Dir)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  tax_year: 2022\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2022, got.Defaults.TaxYear)
	assert.True(t, got.Defaults.IncludeEducation)
	assert.Equal(t, "text", got.Output.Format)
}

func TestLoadAbsolutePathsUntouched(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere", "rates.csv")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("data:\n  rates: "+abs+"\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, got.Data.Rates)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("defaults: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "tax_year: 2024")
	assert.Contains(t, contents, "include_education: true")
	assert.Contains(t, contents, "format: text")
	assert.NotContains(t, contents, "sqlite:")
}
