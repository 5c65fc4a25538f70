package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nebulastore/nebula/internal/cli/router"
)

// NewLoginCmd creates the login command
func NewLoginCmd(opts *Options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), opts, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set NEBULA_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set NEBULA_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, opts *Options, username, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("NEBULA_USERNAME")
	}
	if password == "" {
		password = os.Getenv("NEBULA_PASSWORD")
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	// The login page sends authenticated users to the catalog
	if reached := a.router.Navigate(router.PathLogin); reached != router.PathLogin {
		user := a.session.User()
		fmt.Fprintf(a.out, "Already logged in as %s.\n", user.Username)
		fmt.Fprintln(a.out, "Run 'nebula logout' first to switch accounts.")
		return nil
	}

	if username == "" {
		if !opts.interactive() {
			return fmt.Errorf("username is required in non-interactive mode (use --username flag or NEBULA_USERNAME env var)")
		}
		prompt := promptui.Prompt{Label: "Username"}
		username, err = prompt.Run()
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if !opts.interactive() {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or NEBULA_PASSWORD env var)")
		}
		fmt.Fprint(a.out, "Password: ")
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Fprintln(a.out) // New line after password input
	}

	fmt.Fprintf(a.out, "Logging in to %s...\n", a.endpoint)

	if err := a.session.Login(ctx, username, password); err != nil {
		fmt.Fprintf(a.out, "%s %s\n", a.palette.Error("✗"), a.session.State().Error)
		return err
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "%s Login successful!\n", a.palette.Success("✓"))
	fmt.Fprintf(a.out, "  User: %s (%s)\n", user.Username, user.Email)
	fmt.Fprintln(a.out, "\nBrowse the catalog with: nebula products")

	return nil
}
