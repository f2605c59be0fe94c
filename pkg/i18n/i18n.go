package i18n

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// Translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator is not configured")
	// ErrMissingTranslation is returned by Catalog when a key has no message
	// for the locale or its fallbacks.
	ErrMissingTranslation = errors.New("i18n: missing translation")
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what text to show when a lookup fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// MissingTranslationKey returns the key itself, so untranslated labels still
// render readable text.
func MissingTranslationKey(_ string, key string, _ []any, _ error) string {
	return key
}

// Localizer binds a Translator to a locale.
type Localizer struct {
	Translator Translator
	Locale     string
	OnMissing  MissingTranslationHandler
}

// T resolves key, falling back through OnMissing (the key by default).
func (l Localizer) T(key string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = MissingTranslationKey
	}
	if l.Translator == nil {
		return onMissing(l.Locale, key, args, ErrMissingTranslator)
	}
	msg, err := l.Translator.Translate(l.Locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(l.Locale, key, args, err)
	}
	return msg
}

// Catalog is an in-memory Translator keyed by locale then message key.
// Lookups try the exact locale, then its base language ("es-MX" -> "es"),
// then the fallback locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog creates an empty catalog with the given fallback locale.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: normalizeLocale(fallback),
		messages: make(map[string]map[string]string),
	}
}

// Add merges messages into locale. Later additions win.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	dest, ok := c.messages[locale]
	if !ok {
		dest = make(map[string]string, len(messages))
		c.messages[locale] = dest
	}
	for key, msg := range messages {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			dest[trimmed] = msg
		}
	}
}

// Locales lists the locales with at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// Translate implements Translator. Messages containing fmt verbs are
// formatted with args.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	var out []string
	if locale != "" {
		out = append(out, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			out = append(out, base)
		}
	}
	if c.fallback != "" && c.fallback != locale {
		out = append(out, c.fallback)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
