// Package theme holds the light and dark palettes of the terminal storefront.
package theme

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/nebulastore/nebula/internal/catalog"
)

// Name identifies a palette
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Default is the palette used until the user toggles it
const Default = Dark

// Parse accepts a palette name; empty means Default
func Parse(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return Default, nil
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", fmt.Errorf("unknown theme %q, must be one of: dark, light", s)
	}
}

// Toggle returns the other palette
func Toggle(n Name) Name {
	if n == Light {
		return Dark
	}
	return Light
}

// Style renders a value with terminal attributes
type Style func(interface{}) string

// Palette is a set of styles by role
type Palette struct {
	Name      Name
	Primary   Style
	Secondary Style
	Success   Style
	Error     Style
	Info      Style
	Warning   Style
	Muted     Style
}

// For returns the palette of n
func For(n Name) Palette {
	if n == Light {
		return Palette{
			Name:      Light,
			Primary:   promptui.Styler(promptui.FGBlue, promptui.FGBold),
			Secondary: promptui.Styler(promptui.FGMagenta),
			Success:   promptui.Styler(promptui.FGGreen),
			Error:     promptui.Styler(promptui.FGRed, promptui.FGBold),
			Info:      promptui.Styler(promptui.FGCyan),
			Warning:   promptui.Styler(promptui.FGYellow),
			Muted:     promptui.Styler(promptui.FGBlack),
		}
	}
	return Palette{
		Name:      Dark,
		Primary:   promptui.Styler(promptui.FGMagenta, promptui.FGBold),
		Secondary: promptui.Styler(promptui.FGCyan),
		Success:   promptui.Styler(promptui.FGGreen),
		Error:     promptui.Styler(promptui.FGRed),
		Info:      promptui.Styler(promptui.FGBlue),
		Warning:   promptui.Styler(promptui.FGYellow),
		Muted:     promptui.Styler(promptui.FGFaint),
	}
}

// Plain returns a palette that renders values without escape codes
func Plain(n Name) Palette {
	plain := func(v interface{}) string { return fmt.Sprint(v) }
	return Palette{
		Name:      n,
		Primary:   plain,
		Secondary: plain,
		Success:   plain,
		Error:     plain,
		Info:      plain,
		Warning:   plain,
		Muted:     plain,
	}
}

// Accent returns the style of a category accent
func (p Palette) Accent(a catalog.Accent) Style {
	switch a {
	case catalog.AccentSuccess:
		return p.Success
	case catalog.AccentError:
		return p.Error
	case catalog.AccentInfo:
		return p.Info
	case catalog.AccentWarning:
		return p.Warning
	default:
		return p.Primary
	}
}
