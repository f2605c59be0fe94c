package form

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/rules"
)

// DefaultReturnKey is the keyboard return key used when a binder does not
// configure one.
const DefaultReturnKey = "next"

// BindOption configures a Field binder.
type BindOption func(*bindConfig)

type bindConfig struct {
	rules        []rules.Rule
	defaultValue string
	onChange     func(text string)
	onBlur       func()
	label        string
	placeholder  string
	secret       bool
	returnKey    string
}

// WithRules declares the rule set of the bound field.
func WithRules(declared ...rules.Rule) BindOption {
	return func(cfg *bindConfig) {
		cfg.rules = append(cfg.rules, declared...)
	}
}

// WithDefaultValue seeds the field when the form did not declare a default
// for it. Form level defaults win.
func WithDefaultValue(value string) BindOption {
	return func(cfg *bindConfig) {
		cfg.defaultValue = value
	}
}

// WithChangeOverride replaces the default write-and-validate path. The
// override is responsible for writing through Form.SetValue.
func WithChangeOverride(fn func(text string)) BindOption {
	return func(cfg *bindConfig) {
		cfg.onChange = fn
	}
}

// WithBlurOverride replaces the default touch-and-validate blur handling.
func WithBlurOverride(fn func()) BindOption {
	return func(cfg *bindConfig) {
		cfg.onBlur = fn
	}
}

// WithLabel sets the label translation key.
func WithLabel(key string) BindOption {
	return func(cfg *bindConfig) {
		cfg.label = strings.TrimSpace(key)
	}
}

// WithPlaceholder sets the placeholder translation key.
func WithPlaceholder(key string) BindOption {
	return func(cfg *bindConfig) {
		cfg.placeholder = strings.TrimSpace(key)
	}
}

// WithSecret masks the input (password entry).
func WithSecret() BindOption {
	return func(cfg *bindConfig) {
		cfg.secret = true
	}
}

// WithReturnKey sets a custom return key. Fields with a custom return key
// blur when it is pressed.
func WithReturnKey(kind string) BindOption {
	return func(cfg *bindConfig) {
		cfg.returnKey = strings.TrimSpace(kind)
	}
}

// Field binds one named slot of a Form to a rendering layer. It never caches
// the value or the error; every accessor reads through the Form.
type Field struct {
	form        *Form
	name        string
	onChange    func(text string)
	onBlur      func()
	label       string
	placeholder string
	secret      bool
	returnKey   string
}

// Bind attaches a binder to name, declaring the field and its rules when
// needed.
func (f *Form) Bind(name string, options ...BindOption) (*Field, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrFieldNameRequired
	}

	var cfg bindConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	f.mu.Lock()
	_, existed := f.values[name]
	f.declare(name, cfg.defaultValue)
	if !existed {
		f.valid = f.computeValidLocked()
	}
	f.mu.Unlock()

	if len(cfg.rules) > 0 {
		if err := f.Register(name, cfg.rules...); err != nil {
			return nil, err
		}
	}

	return &Field{
		form:        f,
		name:        name,
		onChange:    cfg.onChange,
		onBlur:      cfg.onBlur,
		label:       cfg.label,
		placeholder: cfg.placeholder,
		secret:      cfg.secret,
		returnKey:   cfg.returnKey,
	}, nil
}

// Form returns the owning form.
func (b *Field) Form() *Form { return b.form }

// Name returns the bound field name.
func (b *Field) Name() string { return b.name }

// Label returns the label translation key.
func (b *Field) Label() string { return b.label }

// Placeholder returns the placeholder translation key.
func (b *Field) Placeholder() string { return b.placeholder }

// Secret reports whether the input is masked.
func (b *Field) Secret() bool { return b.secret }

// ReturnKey returns the configured return key or DefaultReturnKey.
func (b *Field) ReturnKey() string {
	if b.returnKey == "" {
		return DefaultReturnKey
	}
	return b.returnKey
}

// BlurOnSubmit reports whether pressing return should blur the input.
func (b *Field) BlurOnSubmit() bool { return b.returnKey != "" }

// Value returns the current value held by the form.
func (b *Field) Value() string { return b.form.Value(b.name) }

// Error returns the surfaced message of the first failing rule, or "".
func (b *Field) Error() string { return b.form.Error(b.name) }

// Result returns the surfaced validation result.
func (b *Field) Result() rules.Result { return b.form.Result(b.name) }

// Invalid reports whether an error is surfaced for the field.
func (b *Field) Invalid() bool { return !b.Result().Valid }

// Touched reports whether the field has been blurred.
func (b *Field) Touched() bool { return b.form.IsTouched(b.name) }

// Dirty reports whether the value differs from the default.
func (b *Field) Dirty() bool { return b.form.IsDirty(b.name) }

// OnChange handles new input text. With a change override the override runs
// instead of the default write.
func (b *Field) OnChange(text string) {
	if b.onChange != nil {
		b.onChange(text)
		return
	}
	if err := b.form.change(b.name, text); err != nil {
		b.form.logger.Warn("form: change dropped", "form_id", b.form.id, "field", b.name, "error", err)
	}
}

// OnBlur marks the field touched and re-validates it, unless a blur override
// is configured.
func (b *Field) OnBlur() {
	if b.onBlur != nil {
		b.onBlur()
		return
	}
	if err := b.form.blur(b.name); err != nil {
		b.form.logger.Warn("form: blur dropped", "form_id", b.form.id, "field", b.name, "error", err)
	}
}
