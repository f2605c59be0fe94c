package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/html"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/screen"
	"github.com/goliatone/go-formbind/pkg/theme"
	gotheme "github.com/goliatone/go-theme"
)

const defaultRendererName = "html"

// ErrDefinitionNotFound is returned when a request names an id the document
// does not define.
var ErrDefinitionNotFound = errors.New("orchestrator: definition not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFS sets the filesystem used to read schema.SourceFromFS sources.
func WithFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.fsys = fsys
	}
}

// WithAdapters replaces the format adapter registry.
func WithAdapters(adapters *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = adapters
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers transformers applied in order to every resolved
// definition.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithThemeSelector resolves request palettes through selector.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithNotifier sets the notifier handed to built screens.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = n
	}
}

// WithLogger sets the logger used by the orchestrator and built screens.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBuildOptions appends options passed to schema.Definition.Build.
func WithBuildOptions(opts ...schema.BuildOption) Option {
	return func(o *Orchestrator) {
		o.buildOptions = append(o.buildOptions, opts...)
	}
}

// Orchestrator coordinates the pipeline from a definition source to rendered
// output.
type Orchestrator struct {
	fsys            fs.FS
	adapters        *AdapterRegistry
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	themeSelector   gotheme.ThemeSelector
	notifier        notify.Notifier
	logger          *slog.Logger
	buildOptions    []schema.BuildOption
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in adapters and the HTML renderer.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form.
type Request struct {
	// Source identifies the definition or OpenAPI document. Optional when
	// Document or Definition is supplied.
	Source schema.Source

	// Document bypasses reading Source.
	Document *schema.Document

	// Definition bypasses the adapters entirely.
	Definition *schema.Definition

	// DefinitionID selects a definition (or OpenAPI operation) when the
	// document yields more than one.
	DefinitionID string

	// Renderer names the renderer to use; empty uses the default renderer.
	Renderer string

	// Values are written into the form before rendering, as if typed by the
	// user: each named field receives a change then a blur through its binder.
	Values map[string]string

	// ThemeName and ThemeVariant select the palette when a theme selector is
	// configured and RenderOptions.Palette is unset.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Generate resolves the definition, builds the screen and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	s, err := o.Screen(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Palette == (theme.Palette{}) && o.themeSelector != nil {
		palette, err := theme.Resolve(o.themeSelector, req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		options.Palette = palette
	}

	o.logger.DebugContext(ctx, "render screen", "renderer", renderer.Name(), "title", s.Title())
	output, err := renderer.Render(ctx, s, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Screen runs the pipeline up to, and excluding, rendering.
func (o *Orchestrator) Screen(ctx context.Context, req Request) (*screen.Screen, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	def, err := o.Definition(ctx, req)
	if err != nil {
		return nil, err
	}

	build := append([]schema.BuildOption{schema.WithLogger(o.logger)}, o.buildOptions...)
	if o.notifier != nil {
		build = append(build, schema.WithNotifier(o.notifier))
	}
	s, err := def.Build(build...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build screen: %w", err)
	}
	if err := applyValues(s, req.Values); err != nil {
		return nil, err
	}
	return s, nil
}

// Definition resolves and transforms the definition described by req.
func (o *Orchestrator) Definition(ctx context.Context, req Request) (schema.Definition, error) {
	var def schema.Definition
	if req.Definition != nil {
		def = *req.Definition
	} else {
		doc, err := o.resolveDocument(ctx, req)
		if err != nil {
			return schema.Definition{}, err
		}
		defs, err := o.definitions(ctx, doc)
		if err != nil {
			return schema.Definition{}, err
		}
		def, err = pick(defs, req.DefinitionID)
		if err != nil {
			return schema.Definition{}, err
		}
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &def); err != nil {
			return schema.Definition{}, fmt.Errorf("orchestrator: transform definition: %w", err)
		}
	}
	return def, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document or definition is required")
	}
	doc, err := schema.Read(ctx, o.fsys, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) definitions(ctx context.Context, doc schema.Document) (map[string]schema.Definition, error) {
	adapter, err := o.adapters.ForDocument(doc)
	if err != nil {
		return nil, err
	}
	o.logger.DebugContext(ctx, "resolve definitions", "adapter", adapter.Name(), "source", doc.Location())
	defs, err := adapter.Definitions(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %s adapter: %w", adapter.Name(), err)
	}
	return defs, nil
}

func pick(defs map[string]schema.Definition, id string) (schema.Definition, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		if len(defs) == 1 {
			for _, def := range defs {
				return def, nil
			}
		}
		return schema.Definition{}, fmt.Errorf("orchestrator: definition id is required, available: %s", strings.Join(sortedIDs(defs), ", "))
	}
	def, ok := defs[id]
	if !ok {
		return schema.Definition{}, fmt.Errorf("%w: %q", ErrDefinitionNotFound, id)
	}
	return def, nil
}

func sortedIDs(defs map[string]schema.Definition) []string {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// applyValues feeds values through each field binder in form order, so change
// overrides and the form's validation mode apply as they would to typed input.
func applyValues(s *screen.Screen, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	for name := range values {
		if _, ok := s.Field(name); !ok {
			return fmt.Errorf("orchestrator: value for unknown field %q: %w", name, form.ErrUnknownField)
		}
	}
	for _, field := range s.Fields() {
		value, ok := values[field.Name()]
		if !ok {
			continue
		}
		field.OnChange(value)
		field.OnBlur()
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.adapters == nil {
		o.adapters = DefaultAdapters()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
