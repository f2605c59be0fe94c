package formbind

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/theme"
)

func TestAccountHTML(t *testing.T) {
	palette, err := theme.Resolve(theme.NewStaticSelector(theme.DefaultManifest()), "", "dark")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	out, err := AccountHTML(context.Background(), RenderOptions{Palette: palette})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `name="username" type="text" value="test"`) {
		t.Fatalf("expected username input:\n%s", got)
	}
	if !strings.Contains(got, "background: #5b8cff") {
		t.Fatalf("expected dark palette:\n%s", got)
	}
}

func TestGenerateHTML_FromFile(t *testing.T) {
	out, err := GenerateHTML(context.Background(), schema.SourceFromFile("pkg/schema/testdata/newsletter.json"), "", "", WithDefaultTheme())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Subscribe") {
		t.Fatalf("expected submit label:\n%s", out)
	}
}
