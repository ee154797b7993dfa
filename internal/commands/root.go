package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ontax-dev/ontax/internal/buildinfo"
	"github.com/ontax-dev/ontax/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:     "ontax",
		Short:   "Ontario property and income tax estimates",
		Long:    "ontax estimates Ontario property tax from roll numbers and personal income tax\nfrom income and RRSP contributions. All figures are unofficial estimates.",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	a.v.SetEnvPrefix("ONTAX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPropertyCommand(a))
	rootCmd.AddCommand(newIncomeCommand(a))
	rootCmd.AddCommand(newRefdataCommand(a))
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}
