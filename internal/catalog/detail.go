package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is the amount selected on the product detail page. It never
// drops below one.
type Quantity int

// NewQuantity returns a quantity clamped to the minimum of one
func NewQuantity(n int) Quantity {
	if n < 1 {
		return 1
	}
	return Quantity(n)
}

// Add returns the quantity moved by delta, clamped to one
func (q Quantity) Add(delta int) Quantity {
	return NewQuantity(int(q) + delta)
}

// CanDecrement reports whether the decrement control is enabled
func (q Quantity) CanDecrement() bool {
	return q > 1
}

// Total returns price multiplied by the quantity
func (q Quantity) Total(price float64) float64 {
	return price * float64(q)
}

// Tab is one of the information tabs of the product detail page
type Tab int

const (
	TabDescription Tab = iota
	TabDetails
	TabReviews
)

var tabNames = []string{"description", "details", "reviews"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabNames[t]
}

// TabNames lists the accepted tab names in display order
func TabNames() []string {
	return append([]string(nil), tabNames...)
}

// ParseTab accepts a tab name or its index
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabDescription, nil
	}
	for i, name := range tabNames {
		if s == name {
			return Tab(i), nil
		}
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(tabNames) {
		return Tab(i), nil
	}
	return 0, fmt.Errorf("unknown tab %q, must be one of: %s", s, strings.Join(tabNames, ", "))
}

// Field is a labelled value shown on a tab
type Field struct {
	Label string
	Value string
}

// TabContent is what a detail tab renders for a product
type TabContent struct {
	Title  string
	Body   string
	Fields []Field
}

// Content builds the content of tab t for product p
func (t Tab) Content(p *Product) TabContent {
	switch t {
	case TabDetails:
		return TabContent{
			Title: "Details",
			Fields: []Field{
				{Label: "Category", Value: p.Category},
				{Label: "Product ID", Value: fmt.Sprintf("#%d", p.ID)},
				{Label: "Availability", Value: "In stock"},
				{Label: "Rating", Value: formatRate(p.Rating)},
			},
		}
	case TabReviews:
		count := 0
		if p.Rating != nil {
			count = p.Rating.Count
		}
		return TabContent{
			Title: "Customer reviews",
			Body:  "Detailed reviews are not available for this product yet.",
			Fields: []Field{
				{Label: "Average", Value: formatRate(p.Rating)},
				{Label: "Based on", Value: fmt.Sprintf("%d reviews", count)},
			},
		}
	default:
		return TabContent{
			Title: "Description",
			Body:  p.Description,
		}
	}
}

func formatRate(r *Rating) string {
	if r == nil {
		return "0.0"
	}
	return strconv.FormatFloat(r.Rate, 'f', 1, 64)
}
