package theme

import (
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Token names read from a theme manifest.
const (
	TokenPrimary       = "primary"
	TokenTextSecondary = "textSecondary"
	TokenError         = "error"
	TokenDisabled      = "disabled"
	TokenOnPrimary     = "onPrimary"
	TokenBorder        = "border"
)

// Palette is the set of colors the form screens draw with.
type Palette struct {
	Primary       string `json:"primary"`
	TextSecondary string `json:"textSecondary"`
	Error         string `json:"error"`
	Disabled      string `json:"disabled"`
	OnPrimary     string `json:"onPrimary"`
	Border        string `json:"border"`
}

// DefaultPalette is used when no theme is selected or a token is missing.
func DefaultPalette() Palette {
	return Palette{
		Primary:       "#2f6fed",
		TextSecondary: "#8e8e93",
		Error:         "red",
		Disabled:      "gray",
		OnPrimary:     "white",
		Border:        "black",
	}
}

// ButtonColor returns the submit button background for the given validity.
func (p Palette) ButtonColor(enabled bool) string {
	if enabled {
		return p.Primary
	}
	return p.Disabled
}

// Tokens flattens the manifest tokens of a selection, with the selected
// variant overriding the base manifest.
func Tokens(selection *gotheme.Selection) map[string]string {
	out := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return out
	}
	for key, value := range selection.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// PaletteFromSelection overlays selection tokens on DefaultPalette.
func PaletteFromSelection(selection *gotheme.Selection) Palette {
	palette := DefaultPalette()
	tokens := Tokens(selection)
	apply := func(dst *string, key string) {
		if v := strings.TrimSpace(tokens[key]); v != "" {
			*dst = v
		}
	}
	apply(&palette.Primary, TokenPrimary)
	apply(&palette.TextSecondary, TokenTextSecondary)
	apply(&palette.Error, TokenError)
	apply(&palette.Disabled, TokenDisabled)
	apply(&palette.OnPrimary, TokenOnPrimary)
	apply(&palette.Border, TokenBorder)
	return palette
}

// Resolve selects name/variant through selector and builds the palette. A nil
// selector yields DefaultPalette.
func Resolve(selector gotheme.ThemeSelector, name, variant string) (Palette, error) {
	if selector == nil {
		return DefaultPalette(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Palette{}, fmt.Errorf("theme: select %q/%q: %w", name, variant, err)
	}
	return PaletteFromSelection(selection), nil
}

// ErrThemeNotFound is returned by StaticSelector for unknown theme names.
var ErrThemeNotFound = errors.New("theme: not found")

// StaticSelector serves a fixed set of manifests keyed by name.
type StaticSelector struct {
	defaultTheme string
	manifests    map[string]*gotheme.Manifest
}

// NewStaticSelector registers manifests; the first one becomes the default.
func NewStaticSelector(manifests ...*gotheme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*gotheme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select implements go-theme's ThemeSelector. An empty name selects the
// default manifest; an unknown variant falls back to the base tokens.
func (s *StaticSelector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return &gotheme.Selection{
		Theme:    name,
		Variant:  strings.TrimSpace(variant),
		Manifest: manifest,
	}, nil
}

// DefaultManifest is the built-in theme with a light and a dark variant.
func DefaultManifest() *gotheme.Manifest {
	base := DefaultPalette()
	return &gotheme.Manifest{
		Name:    "formbind",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenPrimary:       base.Primary,
			TokenTextSecondary: base.TextSecondary,
			TokenError:         base.Error,
			TokenDisabled:      base.Disabled,
			TokenOnPrimary:     base.OnPrimary,
			TokenBorder:        base.Border,
		},
		Variants: map[string]gotheme.Variant{
			"dark": {
				Tokens: map[string]string{
					TokenPrimary:       "#5b8cff",
					TokenTextSecondary: "#aeaeb2",
					TokenBorder:        "#d1d1d6",
				},
			},
		},
	}
}
