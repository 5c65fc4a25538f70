package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewImageCmd creates the image command
func NewImageCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "image <id>",
		Short: "Open a product image in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd.Context(), opts, args[0])
		},
	}
}

func runImage(ctx context.Context, opts *Options, rawID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := parseProductID(rawID)
	if err != nil {
		return err
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProduct(ctx, id)
	if err != nil {
		return err
	}

	if p.Image == "" {
		return fmt.Errorf("product %d has no image", id)
	}

	fmt.Fprintf(a.out, "Opening image for %s...\n", p.Title)
	fmt.Fprintf(a.out, "URL: %s\n", p.Image)

	if err := opts.openURL(p.Image); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, p.Image)
	}

	return nil
}
