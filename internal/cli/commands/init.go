package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd(opts *Options) *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "init <api-url>",
		Short: "Add a storefront API endpoint to ./nebula.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, args[0], alias)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Endpoint alias (defaults to 'default', then 'endpoint-N')")

	return cmd
}

func runInit(opts *Options, apiURL, alias string) error {
	out := opts.out()

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{}
		isNewConfig = true
	}

	apiURL = strings.TrimRight(apiURL, "/")
	if alias == "" {
		alias = "default"
		if len(cfg.Endpoints) > 0 {
			alias = fmt.Sprintf("endpoint-%d", len(cfg.Endpoints)+1)
		}
	}

	endpoint := config.Endpoint{Alias: alias, URL: apiURL}
	if err := endpoint.Validate(); err != nil {
		return err
	}

	if !cfg.AddEndpoint(endpoint) {
		fmt.Fprintf(out, "Endpoint %s already exists in %s\n", apiURL, config.ConfigFileName)
		return nil
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(out, "✓ Created ./%s with endpoint %s (%s)\n", config.ConfigFileName, apiURL, alias)
	} else {
		fmt.Fprintf(out, "✓ Added endpoint %s (%s) to ./%s\n", apiURL, alias, config.ConfigFileName)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'nebula login' to authenticate")
	fmt.Fprintln(out, "  2. Run 'nebula products' to browse the catalog")

	return nil
}
