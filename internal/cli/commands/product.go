package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nebulastore/nebula/internal/catalog"
	"github.com/nebulastore/nebula/internal/cli/client"
	"github.com/nebulastore/nebula/internal/cli/router"
)

// NewProductCmd creates the product detail command
func NewProductCmd(opts *Options) *cobra.Command {
	var quantity int
	var tab string

	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product",
		Long: `Show a product with its price, the total for a quantity and one
information tab.

Examples:
  $ nebula product 1
  $ nebula product 1 --quantity 3
  $ nebula product 1 --tab reviews`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProduct(cmd.Context(), opts, args[0], quantity, tab)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity (minimum 1)")
	cmd.Flags().StringVarP(&tab, "tab", "t", catalog.TabDescription.String(),
		fmt.Sprintf("Tab to show (%s)", strings.Join(catalog.TabNames(), ", ")))

	return cmd
}

// parseProductID accepts only ids that form a valid detail route
func parseProductID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	if _, ok := router.Match(router.ProductPath(id)); !ok {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

// loadProduct visits the detail page of id and fetches the product
func (a *app) loadProduct(ctx context.Context, id int) (*catalog.Product, error) {
	if err := a.visit(router.ProductPath(id)); err != nil {
		return nil, err
	}

	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			fmt.Fprintf(a.out, "%s Product %d not found.\n", a.palette.Error("✗"), id)
			fmt.Fprintln(a.out, "Back to products: nebula products")
			return nil, fmt.Errorf("product %d not found", id)
		}
		return nil, a.pageError("Failed to load product", err)
	}
	return p, nil
}

func runProduct(ctx context.Context, opts *Options, rawID string, quantity int, rawTab string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := parseProductID(rawID)
	if err != nil {
		return err
	}

	tab, err := catalog.ParseTab(rawTab)
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

	qty := catalog.NewQuantity(quantity)
	accent := a.palette.Accent(catalog.CategoryAccent(p.Category))

	fmt.Fprintln(a.out, a.palette.Primary(p.Title))
	fmt.Fprintln(a.out, accent(p.Category))
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Price:\t%s\n", catalog.FormatPrice(p.Price))
	if p.Rating != nil {
		fmt.Fprintf(w, "Rating:\t%.1f (%d reviews)\n", p.Rating.Rate, p.Rating.Count)
	}
	fmt.Fprintf(w, "Quantity:\t%d\n", qty)
	fmt.Fprintf(w, "Total:\t%s\n", a.palette.Success(catalog.FormatPrice(qty.Total(p.Price))))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, renderTabBar(a, tab))

	content := tab.Content(p)
	fmt.Fprintln(a.out, a.palette.Secondary(content.Title))
	if content.Body != "" {
		fmt.Fprintln(a.out, content.Body)
	}
	if len(content.Fields) > 0 {
		w = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, f := range content.Fields {
			fmt.Fprintf(w, "%s:\t%s\n", f.Label, f.Value)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func renderTabBar(a *app, active catalog.Tab) string {
	names := catalog.TabNames()
	parts := make([]string, len(names))
	for i, name := range names {
		if catalog.Tab(i) == active {
			parts[i] = a.palette.Primary("[" + name + "]")
		} else {
			parts[i] = a.palette.Muted(" " + name + " ")
		}
	}
	return strings.Join(parts, " ")
}
