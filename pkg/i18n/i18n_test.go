package i18n

import (
	"errors"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizer_FallsBackToKey(t *testing.T) {
	l := Localizer{Translator: stubTranslator{"Username": "Nombre de usuario"}, Locale: "es"}

	if got := l.T("Username"); got != "Nombre de usuario" {
		t.Fatalf("expected translated label, got %q", got)
	}
	if got := l.T("Confirm Password"); got != "Confirm Password" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := l.T("  "); got != "" {
		t.Fatalf("expected empty key to stay empty, got %q", got)
	}
}

func TestLocalizer_NoTranslator(t *testing.T) {
	var gotErr error
	l := Localizer{OnMissing: func(_ string, key string, _ []any, err error) string {
		gotErr = err
		return "[" + key + "]"
	}}
	if got := l.T("Submit"); got != "[Submit]" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestCatalog_LocaleFallbacks(t *testing.T) {
	c := NewCatalog("en")
	c.Add("en", map[string]string{"Submit": "Submit", "Reset": "Reset"})
	c.Add("es", map[string]string{"Submit": "Enviar"})
	c.Add("es_MX", map[string]string{"Submit": "Mandar", "Greeting": "Hola %s"})

	cases := []struct {
		locale, key, want string
	}{
		{"es-MX", "Submit", "Mandar"},
		{"es-AR", "Submit", "Enviar"},
		{"es", "Reset", "Reset"},
		{"fr", "Submit", "Submit"},
	}
	for _, tc := range cases {
		got, err := c.Translate(tc.locale, tc.key)
		if err != nil || got != tc.want {
			t.Fatalf("Translate(%q, %q) = %q, %v; want %q", tc.locale, tc.key, got, err, tc.want)
		}
	}

	if got, _ := c.Translate("es-mx", "Greeting", "Ana"); got != "Hola Ana" {
		t.Fatalf("expected formatted message, got %q", got)
	}
	if _, err := c.Translate("es", "Unknown"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es.yaml": {Data: []byte("messages:\n  Username: Nombre de usuario\n  Submit: Enviar\n")},
		"locales/fr.json": {Data: []byte(`{"locale":"fr-FR","messages":{"Submit":"Envoyer"}}`)},
		"locales/README":  {Data: []byte("ignored")},
	}
	c, err := LoadFS(fsys, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	locales := c.Locales()
	sort.Strings(locales)
	if diff := cmp.Diff([]string{"es", "fr-fr"}, locales); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if got, _ := c.Translate("es", "Username"); got != "Nombre de usuario" {
		t.Fatalf("unexpected yaml message %q", got)
	}
	if got, _ := c.Translate("fr-FR", "Submit"); got != "Envoyer" {
		t.Fatalf("unexpected json message %q", got)
	}
}

func TestLoadFS_RejectsEmptyFile(t *testing.T) {
	fsys := fstest.MapFS{"es.yaml": {Data: []byte("  ")}}
	if _, err := LoadFS(fsys, "en"); err == nil {
		t.Fatalf("expected empty file error")
	}
}
