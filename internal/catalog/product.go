// Package catalog holds the product model of the remote catalog and the
// client-side operations the storefront performs on it.
package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Product is a catalog entry as served by the products API.
// Products are immutable once fetched.
type Product struct {
	ID          int     `json:"id" validate:"gt=0"`
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Rating      *Rating `json:"rating,omitempty" validate:"omitempty"`
}

// Rating is the aggregated customer rating of a product
type Rating struct {
	Rate  float64 `json:"rate" validate:"gte=0,lte=5"`
	Count int     `json:"count" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks a decoded product payload
func (p *Product) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid product %d: %w", p.ID, err)
	}
	return nil
}

// FormatPrice renders a price the way the storefront displays it
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Accent is a palette role used to highlight a category
type Accent string

const (
	AccentPrimary Accent = "primary"
	AccentSuccess Accent = "success"
	AccentError   Accent = "error"
	AccentInfo    Accent = "info"
	AccentWarning Accent = "warning"
)

var categoryAccents = map[string]Accent{
	"men's clothing":   AccentSuccess,
	"women's clothing": AccentError,
	"electronics":      AccentInfo,
	"jewelery":         AccentWarning,
}

// CategoryAccent returns the palette role for a category, primary when unknown
func CategoryAccent(category string) Accent {
	if accent, ok := categoryAccents[category]; ok {
		return accent
	}
	return AccentPrimary
}
