package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/cli/theme"
	"github.com/nebulastore/nebula/internal/cli/userconfig"
)

// NewThemeCmd creates the theme command
func NewThemeCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Switch between the light and dark theme",
		Long: `Switch between the light and dark theme.

Without an argument the current theme is toggled.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runTheme(opts, name)
		},
	}
}

func runTheme(opts *Options, name string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	next := theme.Toggle(loadTheme(cfg.Storage.StateDir, opts.logger()))
	if name != "" {
		next, err = theme.Parse(name)
		if err != nil {
			return err
		}
	}

	if err := userconfig.Update(cfg.Storage.StateDir, func(uc *userconfig.UserConfig) {
		uc.Theme = string(next)
	}); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	palette := paletteFor(next, opts.out())
	fmt.Fprintf(opts.out(), "%s Theme set to %s\n", palette.Success("✓"), palette.Primary(string(next)))
	return nil
}
