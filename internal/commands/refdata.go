package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ontax-dev/ontax/internal/assessments"
	"github.com/ontax-dev/ontax/internal/cli"
	"github.com/ontax-dev/ontax/internal/rates"
	"github.com/ontax-dev/ontax/internal/refstore"
)

func newRefdataCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata",
		Short: "Manage assessment and tax rate reference tables",
	}
	cmd.AddCommand(newRefdataImportCommand(a))
	cmd.AddCommand(newRefdataCheckCommand(a))
	return cmd
}

func newRefdataImportCommand(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load both CSV tables into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := refstore.LoadCSV(a.cfg.Data.Assessments, a.cfg.Data.Rates)
			if err != nil {
				return err
			}

			store, err := refstore.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ReplaceAll(cmd.Context(), tables.Assessments.All(), tables.Rates.All()); err != nil {
				return err
			}
			na, nr, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("reference data imported", "db", store.Path(), "assessments", na, "rates", nr)

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Imported %d assessments and %d tax rates into %s", na, nr, store.Path())))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func newRefdataCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the reference tables and report row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, k := range assessments.DuplicateKeys(tables.Assessments.All()) {
				fmt.Fprintln(w, cli.FormatWarning("Duplicate assessment "+k+" (first row wins)"))
			}
			for _, k := range rates.DuplicateKeys(tables.Rates.All()) {
				fmt.Fprintln(w, cli.FormatWarning("Duplicate tax rate "+k+" (first row wins)"))
			}

			fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%d assessments, %d tax rates across %d municipalities",
				tables.Assessments.Len(), tables.Rates.Len(), len(tables.Rates.Municipalities()))))
			return nil
		},
	}
}
