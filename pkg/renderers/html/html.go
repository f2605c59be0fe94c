// Package html renders a screen as a static HTML form using pongo2 templates.
// Translated text is sanitized with bluemonday before it reaches the
// template; field values are escaped by the template engine.
package html

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbind/pkg/render"
)

//go:embed templates/*.tpl
var defaultTemplates embed.FS

const defaultTemplate = "screen.tpl"

// Sizes used by the default template, as theme.Scale expressions.
var defaultSizes = map[string]string{
	"fieldGap":     "16@vs",
	"inputPadding": "8@s",
	"errorFont":    "12@ms",
	"buttonHeight": "44@vs",
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithTemplatesFS loads templates from fsys instead of the embedded set.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.templates = fsys
		}
	}
}

// WithTemplate selects the template file rendered for a screen.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.template = name
		}
	}
}

// WithFormID sets the id attribute of the rendered form element.
func WithFormID(id string) Option {
	return func(r *Renderer) {
		if id = strings.TrimSpace(id); id != "" {
			r.formID = id
		}
	}
}

// WithSize overrides a size expression used by the template.
func WithSize(name, expr string) Option {
	return func(r *Renderer) {
		r.sizes[name] = expr
	}
}

// Renderer implements render.Renderer producing HTML.
type Renderer struct {
	mu        sync.Mutex
	templates fs.FS
	template  string
	formID    string
	sizes     map[string]string
	set       *pongo2.TemplateSet
	compiled  *pongo2.Template
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs an HTML renderer backed by the embedded templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		template: defaultTemplate,
		formID:   "formbind",
		sizes:    make(map[string]string, len(defaultSizes)),
	}
	for name, expr := range defaultSizes {
		r.sizes[name] = expr
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		sub, err := fs.Sub(defaultTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("html: templates: %w", err)
		}
		r.templates = sub
	}
	r.set = pongo2.NewSet("formbind", pongo2.NewFSLoader(r.templates))
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the MIME type of Render output.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render draws the current state of s.
func (r *Renderer) Render(ctx context.Context, s render.Screen, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("html: screen is required")
	}

	tmpl, err := r.compile()
	if err != nil {
		return nil, err
	}
	sizes, err := r.resolveSizes(opts)
	if err != nil {
		return nil, err
	}

	view := sanitizeView(render.NewView(s, opts))
	data := pongo2.Context{
		"id":    r.formID,
		"view":  view,
		"sizes": sizes,
	}
	for name, fn := range render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{OnMissing: opts.OnMissing}) {
		data[name] = fn
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html: execute template %q: %w", r.template, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) compile() (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.compiled != nil {
		return r.compiled, nil
	}
	tmpl, err := r.set.FromFile(r.template)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", r.template, err)
	}
	r.compiled = tmpl
	return tmpl, nil
}

func (r *Renderer) resolveSizes(opts render.RenderOptions) (map[string]string, error) {
	scale := opts.Scale
	out := make(map[string]string, len(r.sizes))
	for name, expr := range r.sizes {
		value, err := scale.Resolve(expr)
		if err != nil {
			return nil, fmt.Errorf("html: size %q: %w", name, err)
		}
		out[name] = strconv.FormatFloat(value, 'f', -1, 64)
	}
	return out, nil
}

// sanitizeView strips markup from every translated or declared text. Values
// are left alone; the template escapes them.
func sanitizeView(view render.View) render.View {
	view.Title = sanitizeText(view.Title)
	fields := make([]render.FieldView, len(view.Fields))
	for i, field := range view.Fields {
		field.Label = sanitizeText(field.Label)
		field.Placeholder = sanitizeText(field.Placeholder)
		field.Error = sanitizeText(field.Error)
		fields[i] = field
	}
	view.Fields = fields
	actions := make([]render.ActionView, len(view.Actions))
	for i, action := range view.Actions {
		action.Label = sanitizeText(action.Label)
		actions[i] = action
	}
	view.Actions = actions
	return view
}

func sanitizeText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}
