package commands

import (
	"github.com/spf13/cobra"

	"github.com/ontax-dev/ontax/internal/buildinfo"
	"github.com/ontax-dev/ontax/internal/propertytax"
	"github.com/ontax-dev/ontax/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var release bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}

			srv := server.New(tables, server.Options{
				Defaults: propertytax.Options{
					Year:             a.cfg.Defaults.TaxYear,
					IncludeEducation: a.cfg.Defaults.IncludeEducation,
				},
				Version: buildinfo.String(),
				Release: release,
			})

			return srv.Run(a.v.GetString("server.addr"))
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&release, "release", false, "run gin in release mode")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
