package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ontax-dev/ontax/internal/assessments"
	"github.com/ontax-dev/ontax/internal/cli"
	"github.com/ontax-dev/ontax/internal/config"
	"github.com/ontax-dev/ontax/internal/rates"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ontax workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Initialized ontax workspace at "+absDir))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing ontax.yaml")

	return cmd
}

func runInit(dir string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	cfg := config.Default()
	for _, d := range []string{filepath.Dir(cfg.Data.Assessments), cfg.Output.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Header-only tables, ready to be filled in.
	if err := writeIfMissing(filepath.Join(dir, cfg.Data.Assessments), func(f *os.File) error {
		return assessments.WriteAssessments(f, nil)
	}); err != nil {
		return fmt.Errorf("writing assessments table: %w", err)
	}
	if err := writeIfMissing(filepath.Join(dir, cfg.Data.Rates), func(f *os.File) error {
		return rates.WriteRates(f, nil)
	}); err != nil {
		return fmt.Errorf("writing rates table: %w", err)
	}

	return nil
}

// writeIfMissing creates path and fills it with write. Existing files are
// left untouched so re-initializing never discards reference data.
func writeIfMissing(path string, write func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
