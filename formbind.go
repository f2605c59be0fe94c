// Package formbind is the top-level entry point: it re-exports the pipeline
// constructors so callers can render a form definition with a single import.
package formbind

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/account"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/html"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/theme"
	gotheme "github.com/goliatone/go-theme"
)

// RenderOptions aliases render.RenderOptions for callers that only import
// the root package.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewParser constructs the OpenAPI parser used to derive definitions from
// request bodies.
func NewParser(options ...openapi.ParserOption) *openapi.Parser {
	return openapi.New(options...)
}

// GenerateHTML reads the definition or OpenAPI document behind source and
// renders the definition with id (an operation id for OpenAPI documents)
// using the named renderer. An empty id is accepted when the document yields
// a single definition.
func GenerateHTML(ctx context.Context, source schema.Source, id, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:       source,
		DefinitionID: id,
		Renderer:     rendererName,
	})
}

// GenerateHTMLFromDefinition renders an already parsed definition.
func GenerateHTMLFromDefinition(ctx context.Context, def schema.Definition, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definition: &def,
		Renderer:   rendererName,
	})
}

// AccountHTML renders the account creation screen in its initial state.
func AccountHTML(ctx context.Context, options RenderOptions, accountOptions ...account.Option) ([]byte, error) {
	s, err := account.New(accountOptions...)
	if err != nil {
		return nil, err
	}
	r, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("formbind: html renderer: %w", err)
	}
	return r.Render(ctx, s, options)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices resolve a palette ahead of rendering.
func WithThemeSelector(selector gotheme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme registers the built-in theme manifest.
func WithDefaultTheme() orchestrator.Option {
	return orchestrator.WithThemeSelector(theme.NewStaticSelector(theme.DefaultManifest()))
}
