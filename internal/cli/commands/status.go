package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/cli/router"
)

// NewStatusCmd creates the status command
func NewStatusCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts)
		},
	}
}

func runStatus(opts *Options) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	state := a.session.State()
	// Where the storefront opens for this session
	landing := a.router.Navigate(router.PathLogin)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Endpoint:\t%s\n", a.endpoint)
	if state.IsAuthenticated {
		fmt.Fprintf(w, "Session:\t%s\n", a.palette.Success("authenticated"))
		fmt.Fprintf(w, "User:\t%s (%s)\n", state.User.Username, state.User.Email)
	} else {
		fmt.Fprintf(w, "Session:\t%s\n", a.palette.Muted("not logged in"))
	}
	fmt.Fprintf(w, "Landing page:\t%s\n", landing)
	fmt.Fprintf(w, "Token backend:\t%s\n", a.cfg.Storage.Backend)
	fmt.Fprintf(w, "Theme:\t%s\n", a.theme)
	return w.Flush()
}
