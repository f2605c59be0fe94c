package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formbind/pkg/i18n"
)

// TemplateI18nConfig tunes the helpers returned by TemplateI18nFuncs.
type TemplateI18nConfig struct {
	// LocaleKey is the map key or struct field holding the locale when a
	// template passes a whole value such as a View. Defaults to "Locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName  string
	OnMissing i18n.MissingTranslationHandler
}

// TemplateI18nFuncs builds the helpers a screen template calls:
//
//	translate(view, "disabled")
//	current_locale(view)
//
// The first argument is a locale string or any map/struct carrying one.
func TemplateI18nFuncs(t i18n.Translator, cfg TemplateI18nConfig) map[string]any {
	key := strings.TrimSpace(cfg.LocaleKey)
	if key == "" {
		key = "Locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}

	localeOf := func(src any) string { return localeFrom(src, key) }
	return map[string]any{
		name: func(src any, msg string, args ...any) string {
			return i18n.Localizer{Translator: t, Locale: localeOf(src), OnMissing: cfg.OnMissing}.T(msg, args...)
		},
		"current_locale": localeOf,
	}
}

func localeFrom(src any, key string) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]string:
		return v[key]
	case map[string]any:
		raw, ok := v[key]
		if !ok {
			return ""
		}
		if s, ok := raw.(string); ok {
			return s
		}
		return strings.TrimSpace(fmt.Sprint(raw))
	}

	rv := reflect.Indirect(reflect.ValueOf(src))
	if rv.Kind() != reflect.Struct {
		return ""
	}
	if field := rv.FieldByName(key); field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}
