package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ontax-dev/ontax/internal/cli"
	"github.com/ontax-dev/ontax/internal/incometax"
	"github.com/ontax-dev/ontax/internal/report"
)

func newIncomeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Personal income tax estimates",
	}
	cmd.AddCommand(newIncomeEstimateCommand(a))
	return cmd
}

func newIncomeEstimateCommand(a *app) *cobra.Command {
	var (
		incomeStr string
		rrspStr   string
		format    string
		out       string
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "Estimate federal and Ontario income tax",
		Example: "  ontax income estimate --income 85000 --rrsp 5000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			income, err := parseAmount("income", incomeStr)
			if err != nil {
				return err
			}
			rrsp, err := parseAmount("rrsp", rrspStr)
			if err != nil {
				return err
			}

			result := incometax.Calculate(income, rrsp)
			slog.Debug("income estimate complete", "taxable", result.TaxableIncome, "total", result.TotalTax)

			w := cmd.OutOrStdout()
			cli.PrintIncome(w, result)

			if format == "" && out == "" {
				return nil
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			path, err := a.writeReport("income", format, out, func(rd report.Renderer, w io.Writer) error {
				return rd.RenderIncome(w, result)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(w, cli.FormatSuccess("Report written to "+path))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&incomeStr, "income", "", "annual income (required)")
	_ = cmd.MarkFlagRequired("income")
	flags.StringVar(&rrspStr, "rrsp", "0", "RRSP contribution")
	flags.StringVar(&format, "format", "", "write a report in this format")
	flags.StringVarP(&out, "out", "o", "", "report path (default: timestamped file in the output dir)")

	return cmd
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid --%s: %w", name, errNegative)
	}
	return d, nil
}

var errNegative = errors.New("must not be negative")
