package render

import (
	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/theme"
)

// RenderOptions describe per-request data renderers use to customise their
// output without touching the form.
type RenderOptions struct {
	// Locale selects the translation locale for labels, placeholders, the
	// title and action labels. Validation messages are never translated.
	Locale string
	// Translator resolves translation keys. Nil leaves keys untranslated.
	Translator i18n.Translator
	// OnMissing decides the text shown for a missing translation.
	OnMissing i18n.MissingTranslationHandler
	// Palette colors the output. The zero value means theme.DefaultPalette.
	Palette theme.Palette
	// Scale resolves size expressions. The zero value maps sizes one to one.
	Scale theme.Scale
}

// Localizer returns the i18n.Localizer described by the options.
func (o RenderOptions) Localizer() i18n.Localizer {
	return i18n.Localizer{Translator: o.Translator, Locale: o.Locale, OnMissing: o.OnMissing}
}

// ResolvedPalette returns Palette, or the default palette when unset.
func (o RenderOptions) ResolvedPalette() theme.Palette {
	if o.Palette == (theme.Palette{}) {
		return theme.DefaultPalette()
	}
	return o.Palette
}
