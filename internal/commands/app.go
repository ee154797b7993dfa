package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ontax-dev/ontax/internal/config"
	"github.com/ontax-dev/ontax/internal/logging"
	"github.com/ontax-dev/ontax/internal/refstore"
	"github.com/ontax-dev/ontax/internal/report"
)

// app carries state shared by subcommands once the root pre-run has loaded
// the config.
type app struct {
	configPath string
	cfg        *config.Config
	v          *viper.Viper
}

// setup loads the config file (falling back to defaults when it does not
// exist) and installs the logger. Flag and ONTAX_* environment values win
// over the file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	case err != nil:
		return err
	}
	a.cfg = cfg

	a.v.SetDefault("logging.level", cfg.Logging.Level)
	a.v.SetDefault("logging.format", cfg.Logging.Format)
	a.v.SetDefault("server.addr", cfg.Server.Addr)
	a.v.SetDefault("data.sqlite", cfg.Data.SQLite)

	if err := logging.Setup(cmd.ErrOrStderr(), a.v.GetString("logging.level"), a.v.GetString("logging.format")); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	slog.Debug("config loaded", "path", a.configPath, "found", err == nil)
	return nil
}

// loadTables reads the reference tables from SQLite when configured,
// otherwise from the CSV files.
func (a *app) loadTables(ctx context.Context) (*refstore.Tables, error) {
	start := time.Now()

	var (
		tables *refstore.Tables
		err    error
		source string
	)
	if db := a.v.GetString("data.sqlite"); db != "" {
		source = db
		tables, err = refstore.LoadSQLite(ctx, db)
	} else {
		source = a.cfg.Data.Assessments + ", " + a.cfg.Data.Rates
		tables, err = refstore.LoadCSV(a.cfg.Data.Assessments, a.cfg.Data.Rates)
	}
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}

	slog.Debug("reference data loaded",
		"source", source,
		"assessments", tables.Assessments.Len(),
		"rates", tables.Rates.Len(),
		"duration", time.Since(start),
	)
	return tables, nil
}

// writeReport renders a document with the named format to out, or to a
// timestamped file in the configured output directory when out is empty.
func (a *app) writeReport(kind, format, out string, render func(report.Renderer, io.Writer) error) (string, error) {
	rd, err := report.DefaultRegistry().Get(format)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = report.DefaultPath(a.cfg.Output.Dir, kind, rd, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	if err := render(rd, f); err != nil {
		return "", fmt.Errorf("rendering %s report: %w", kind, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing report: %w", err)
	}
	return out, nil
}
