// Package account builds the account creation screen: username, email,
// password and password confirmation, with submit and reset actions.
package account

import (
	"log/slog"
	"unicode/utf8"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/screen"
)

// Field names in render order.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// OverrideLength is the username length that triggers the override text.
const OverrideLength = 12

// OverrideText replaces a username of OverrideLength runes.
const OverrideText = "Custom onChangeText"

// Defaults returns the initial values in render order.
func Defaults() []Default {
	return []Default{
		{FieldUsername, "test"},
		{FieldEmail, "test@test.com"},
		{FieldPassword, "12345678"},
		{FieldConfirmPassword, "12345678"},
	}
}

// Default is a field name and its initial value.
type Default struct {
	Name  string
	Value string
}

type config struct {
	mode        form.Mode
	notifier    notify.Notifier
	logger      *slog.Logger
	formOptions []form.Option
}

// Option customises the account screen.
type Option func(*config)

// WithNotifier sets the submit notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(c *config) { c.notifier = n }
}

// WithLogger attaches a logger to the form and the screen.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMode sets the validation mode (onChange by default).
func WithMode(mode form.Mode) Option {
	return func(c *config) { c.mode = mode }
}

// WithFormOptions passes extra options to form.New, after the defaults.
func WithFormOptions(opts ...form.Option) Option {
	return func(c *config) { c.formOptions = append(c.formOptions, opts...) }
}

// Screen is the account creation screen.
type Screen struct {
	*screen.Screen

	username        *form.Field
	email           *form.Field
	password        *form.Field
	confirmPassword *form.Field
}

// New builds the account screen.
func New(options ...Option) (*Screen, error) {
	cfg := config{mode: form.ModeOnChange}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	formOpts := make([]form.Option, 0, len(cfg.formOptions)+6)
	for _, d := range Defaults() {
		formOpts = append(formOpts, form.WithDefault(d.Name, d.Value))
	}
	formOpts = append(formOpts,
		form.WithMode(cfg.mode),
		form.WithReValidateMode(form.ModeOnChange),
		form.WithLogger(cfg.logger),
	)
	formOpts = append(formOpts, cfg.formOptions...)
	f := form.New(formOpts...)

	s := &Screen{}
	var err error

	s.username, err = f.Bind(FieldUsername,
		form.WithLabel("Username"),
		form.WithRules(rules.Required("Username is required.")),
		form.WithChangeOverride(func(text string) {
			if utf8.RuneCountInString(text) == OverrideLength {
				text = OverrideText
			}
			if err := f.SetValue(FieldUsername, text, form.ShouldValidate()); err != nil && cfg.logger != nil {
				cfg.logger.Warn("account: username write failed", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.email, err = f.Bind(FieldEmail,
		form.WithLabel("Email"),
		form.WithRules(rules.Pattern(rules.EmailPattern, "Invalid Email.")),
	)
	if err != nil {
		return nil, err
	}

	s.password, err = f.Bind(FieldPassword,
		form.WithLabel("Password"),
		form.WithSecret(),
		form.WithRules(
			rules.MaxLength(15, "The maximum length is 15."),
			rules.MinLength(6, "The minimum length is 6."),
			rules.Required("Password is required."),
		),
	)
	if err != nil {
		return nil, err
	}

	s.confirmPassword, err = f.Bind(FieldConfirmPassword,
		form.WithLabel("Confirm Password"),
		form.WithSecret(),
		form.WithRules(
			rules.Required("Confirm Password is required."),
			rules.EqualTo(FieldPassword, "Password do not match"),
		),
	)
	if err != nil {
		return nil, err
	}

	screenOpts := []screen.Option{screen.WithTitle("Account"), screen.WithLogger(cfg.logger)}
	if cfg.notifier != nil {
		screenOpts = append(screenOpts, screen.WithNotifier(cfg.notifier))
	}
	base, err := screen.New(f, []*form.Field{s.username, s.email, s.password, s.confirmPassword}, screenOpts...)
	if err != nil {
		return nil, err
	}
	s.Screen = base
	return s, nil
}

// Username returns the username binder.
func (s *Screen) Username() *form.Field { return s.username }

// Email returns the email binder.
func (s *Screen) Email() *form.Field { return s.email }

// Password returns the password binder.
func (s *Screen) Password() *form.Field { return s.password }

// ConfirmPassword returns the confirmation binder.
func (s *Screen) ConfirmPassword() *form.Field { return s.confirmPassword }
