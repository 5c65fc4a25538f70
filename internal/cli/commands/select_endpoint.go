package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/cli/config"
	"github.com/nebulastore/nebula/internal/cli/endpointselect"
	"github.com/nebulastore/nebula/internal/cli/userconfig"
)

// NewSelectEndpointCmd creates the select-endpoint command
func NewSelectEndpointCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-endpoint [url-or-alias]",
		Short: "Select the API endpoint to use for commands",
		Long: `Select the API endpoint to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ nebula select-endpoint                        # Interactive selection
  $ nebula select-endpoint https://api.example.com # Select by URL
  $ nebula select-endpoint staging                # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectEndpoint(opts, urlOrAlias)
		},
	}

	return cmd
}

func runSelectEndpoint(opts *Options, urlOrAlias string) error {
	appCfg, err := opts.config()
	if err != nil {
		return err
	}

	// Load project config
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'nebula init' to create a configuration file", err)
	}

	var endpoint *config.Endpoint

	if urlOrAlias != "" {
		endpoint, err = cfg.GetEndpointByURLOrAlias(urlOrAlias)
		if err != nil {
			return err
		}
	} else {
		if !opts.interactive() {
			return fmt.Errorf("an endpoint URL or alias is required in non-interactive mode")
		}
		endpoint, err = endpointselect.PromptEndpointSelection(cfg)
		if err != nil {
			return err
		}
	}

	// Save the selected endpoint
	if err := userconfig.SetSelectedEndpoint(appCfg.Storage.StateDir, endpoint.URL); err != nil {
		return fmt.Errorf("failed to save selected endpoint: %w", err)
	}

	fmt.Fprintf(opts.out(), "Selected endpoint: %s (%s)\n", endpoint.Alias, endpoint.URL)
	return nil
}
