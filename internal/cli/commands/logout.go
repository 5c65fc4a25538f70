package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(opts)
		},
	}
}

func runLogout(opts *Options) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	wasAuthenticated := a.session.IsAuthenticated()
	a.session.Logout()

	if wasAuthenticated {
		fmt.Fprintf(a.out, "%s Logged out\n", a.palette.Success("✓"))
	} else {
		fmt.Fprintln(a.out, "Not logged in.")
	}
	return nil
}
