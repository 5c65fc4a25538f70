package catalog

import "strings"

// Filter returns the products whose title or category contains query,
// ignoring case. Whitespace in the query is significant; a blank query
// returns products unchanged.
func Filter(products []Product, query string) []Product {
	if strings.TrimSpace(query) == "" {
		return products
	}
	q := strings.ToLower(query)

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
