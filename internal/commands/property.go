package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ontax-dev/ontax/internal/cli"
	"github.com/ontax-dev/ontax/internal/propertytax"
	"github.com/ontax-dev/ontax/internal/report"
	"github.com/ontax-dev/ontax/internal/rollnumber"
)

func newPropertyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Property tax estimates",
	}
	cmd.AddCommand(newPropertyEstimateCommand(a))
	return cmd
}

func newPropertyEstimateCommand(a *app) *cobra.Command {
	var (
		file        string
		year        int
		noEducation bool
		format      string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "estimate [roll-number...]",
		Short: "Estimate property tax for one or more roll numbers",
		Example: `  ontax property estimate 1912-345-678-901-23456
  ontax property estimate --file rolls.txt --year 2023 --format xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raws := append([]string(nil), args...)
			fromFile := file != ""
			if fromFile {
				lines, err := readBatch(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				raws = append(raws, lines...)
			}
			if len(raws) == 0 {
				return errors.New("no roll numbers given (pass them as arguments or with --file)")
			}

			opts := propertytax.Options{
				Year:             a.cfg.Defaults.TaxYear,
				IncludeEducation: a.cfg.Defaults.IncludeEducation,
			}
			if cmd.Flags().Changed("year") {
				opts.Year = year
			}
			if noEducation {
				opts.IncludeEducation = false
			}

			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			est := propertytax.NewEstimator(tables.Assessments, tables.Rates)

			var progress func()
			if fromFile {
				bar := newProgressBar(cmd.ErrOrStderr(), len(raws))
				progress = func() {
					if err := bar.Add(1); err != nil {
						slog.Warn("Failed to update progress bar", "error", err)
					}
				}
			}

			batch := est.EstimateBatch(raws, opts, progress)
			slog.Info("property estimate complete",
				"count", len(raws),
				"results", len(batch.Results),
				"warnings", len(batch.Warnings),
				"year", opts.Year,
			)

			w := cmd.OutOrStdout()
			cli.PrintPropertyBatch(w, batch)

			if (format == "" && out == "") || len(batch.Results) == 0 {
				return nil
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			path, err := a.writeReport("property", format, out, func(rd report.Renderer, w io.Writer) error {
				return rd.RenderProperty(w, batch.Results)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(w, cli.FormatSuccess("Report written to "+path))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&file, "file", "f", "", "read roll numbers from a file, one per line (- for stdin)")
	flags.IntVar(&year, "year", 0, "preferred assessment and rate year (default from config)")
	flags.BoolVar(&noEducation, "no-education", false, "exclude the education portion of the rate")
	flags.StringVar(&format, "format", "", "write a report in this format ("+strings.Join(report.DefaultRegistry().Formats(), ", ")+")")
	flags.StringVarP(&out, "out", "o", "", "report path (default: timestamped file in the output dir)")

	return cmd
}

// readBatch reads newline-separated roll numbers from path, or from stdin
// when path is "-".
func readBatch(stdin io.Reader, path string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading roll numbers: %w", err)
	}
	return rollnumber.SplitBatch(string(data)), nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Estimating properties...[reset]"),
		progressbar.OptionClearOnFinish(),
	)
}
