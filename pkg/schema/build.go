package schema

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/screen"
)

// BuildOption customises Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	notifier    notify.Notifier
	logger      *slog.Logger
	formOptions []form.Option
	overrides   map[string]func(*form.Form) func(string)
}

// WithNotifier sets the submit notifier of the built screen.
func WithNotifier(n notify.Notifier) BuildOption {
	return func(cfg *buildConfig) { cfg.notifier = n }
}

// WithLogger attaches a logger to the built form and screen.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(cfg *buildConfig) { cfg.logger = logger }
}

// WithFormOptions appends options passed to form.New after the definition's
// own defaults and modes.
func WithFormOptions(opts ...form.Option) BuildOption {
	return func(cfg *buildConfig) { cfg.formOptions = append(cfg.formOptions, opts...) }
}

// WithChangeOverride installs a change override on the named field. The
// factory receives the built form so the override can write into it.
func WithChangeOverride(field string, factory func(*form.Form) func(text string)) BuildOption {
	return func(cfg *buildConfig) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]func(*form.Form) func(string))
		}
		cfg.overrides[field] = factory
	}
}

// Build validates the definition and returns a screen over a new form.
func (d Definition) Build(options ...BuildOption) (*screen.Screen, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var cfg buildConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	f, err := d.newForm(cfg)
	if err != nil {
		return nil, err
	}

	fields := make([]*form.Field, 0, len(d.Fields))
	for _, def := range d.Fields {
		declared, err := def.RuleSet()
		if err != nil {
			return nil, err
		}
		bind := []form.BindOption{
			form.WithRules(declared...),
			form.WithLabel(def.Label),
			form.WithPlaceholder(def.Placeholder),
			form.WithReturnKey(def.ReturnKey),
		}
		if def.Secret {
			bind = append(bind, form.WithSecret())
		}
		if factory, ok := cfg.overrides[def.Name]; ok && factory != nil {
			bind = append(bind, form.WithChangeOverride(factory(f)))
		}
		field, err := f.Bind(strings.TrimSpace(def.Name), bind...)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	screenOpts := []screen.Option{
		screen.WithTitle(d.Title),
		screen.WithActionLabels(d.SubmitLabel, d.ResetLabel),
		screen.WithLogger(cfg.logger),
	}
	if cfg.notifier != nil {
		screenOpts = append(screenOpts, screen.WithNotifier(cfg.notifier))
	}
	return screen.New(f, fields, screenOpts...)
}

func (d Definition) newForm(cfg buildConfig) (*form.Form, error) {
	mode, err := parseMode(d.Mode)
	if err != nil {
		return nil, err
	}
	reMode, err := parseMode(d.ReValidateMode)
	if err != nil {
		return nil, err
	}

	opts := make([]form.Option, 0, len(d.Fields)+4+len(cfg.formOptions))
	for _, def := range d.Fields {
		opts = append(opts, form.WithDefault(strings.TrimSpace(def.Name), def.Default))
	}
	opts = append(opts, form.WithMode(mode), form.WithReValidateMode(reMode), form.WithLogger(cfg.logger))
	if id := strings.TrimSpace(d.ID); id != "" {
		opts = append(opts, form.WithID(id))
	}
	opts = append(opts, cfg.formOptions...)
	return form.New(opts...), nil
}

// Evaluate builds a fresh form, writes values into it and validates every
// field. Results come back in field order; fields missing from values keep
// their defaults.
func (d Definition) Evaluate(values map[string]string) ([]rules.Result, error) {
	s, err := d.Build()
	if err != nil {
		return nil, err
	}
	f := s.Form()
	for name, value := range values {
		if err := f.SetValue(name, value); err != nil {
			return nil, err
		}
	}
	f.Trigger()

	out := make([]rules.Result, 0, len(d.Fields))
	for _, name := range f.Names() {
		out = append(out, f.Result(name))
	}
	return out, nil
}
