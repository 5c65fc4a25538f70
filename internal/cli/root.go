package cli

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/cli/commands"
	"github.com/nebulastore/nebula/internal/logger"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the nebula command tree around opts
func NewRootCmd(opts *commands.Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nebula",
		Short: "Nebula - storefront in your terminal",
		Long: `Nebula CLI - Browse the Nebula storefront from your terminal.

Sign in, search the product catalog and inspect products without
leaving the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			// Load configuration and set up logging before any command runs
			if opts.Config == nil {
				cfg, err := commands.LoadConfig(opts)
				if err != nil {
					return err
				}
				logger.Init(cfg.Logging.Level, cfg.Logging.Format)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Endpoint, "endpoint", "e", "", "Endpoint alias from nebula.yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "Keep the session token in memory for this run only")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("nebula", "cybermedium", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintf(cmd.OutOrStdout(), "nebula version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd(opts))
	rootCmd.AddCommand(commands.NewLoginCmd(opts))
	rootCmd.AddCommand(commands.NewLogoutCmd(opts))
	rootCmd.AddCommand(commands.NewStatusCmd(opts))
	rootCmd.AddCommand(commands.NewProductsCmd(opts))
	rootCmd.AddCommand(commands.NewProductCmd(opts))
	rootCmd.AddCommand(commands.NewImageCmd(opts))
	rootCmd.AddCommand(commands.NewThemeCmd(opts))
	rootCmd.AddCommand(commands.NewSelectEndpointCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd(&commands.Options{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
