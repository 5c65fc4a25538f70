package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/catalog"
	"github.com/nebulastore/nebula/internal/cli/router"
)

// NewProductsCmd creates the products command
func NewProductsCmd(opts *Options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"ls"},
		Short:   "List the product catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(cmd.Context(), opts, search)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title or category")

	return cmd
}

func runProducts(ctx context.Context, opts *Options, search string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.visit(router.PathProducts); err != nil {
		return err
	}

	products, err := a.api.ListProducts(ctx)
	if err != nil {
		return a.pageError("Failed to load products", err)
	}

	visible := catalog.Filter(products, search)
	if len(visible) == 0 {
		if strings.TrimSpace(search) != "" {
			fmt.Fprintf(a.out, "No products match %q.\n", strings.TrimSpace(search))
		} else {
			fmt.Fprintln(a.out, "No products found.")
		}
		return nil
	}

	if len(visible) != len(products) {
		fmt.Fprintf(a.out, "Showing %d of %d products:\n\n", len(visible), len(products))
	} else {
		fmt.Fprintf(a.out, "Products (%d):\n\n", len(products))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
	fmt.Fprintln(w, "──\t─────\t────────\t─────\t──────")

	for _, p := range visible {
		style := a.palette.Accent(catalog.CategoryAccent(p.Category))
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Title,
			style(p.Category),
			catalog.FormatPrice(p.Price),
			formatRating(p.Rating),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nView a product with: nebula product <id>")
	return nil
}

func formatRating(r *catalog.Rating) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", r.Rate, r.Count)
}
