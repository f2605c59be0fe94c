// Package screen ties a form, its bound fields and a notifier into a single
// submit/reset unit that renderers can drive.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
)

// SubmitTitle is the notification title used for submitted values.
const SubmitTitle = "Form Data"

// Action identifiers.
const (
	ActionSubmit = "submit"
	ActionReset  = "reset"
)

var (
	// ErrNilForm is returned by New without a form.
	ErrNilForm = errors.New("screen: form is required")
	// ErrForeignField is returned when a field is bound to another form.
	ErrForeignField = errors.New("screen: field belongs to a different form")
)

// Action is a button shown under the fields. Label is a translation key.
type Action struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Option customises a Screen.
type Option func(*Screen)

// WithTitle sets the screen title (a translation key).
func WithTitle(title string) Option {
	return func(s *Screen) {
		s.title = strings.TrimSpace(title)
	}
}

// WithNotifier sets where submitted values are delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Screen) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Screen) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActionLabels overrides the submit and reset label keys.
func WithActionLabels(submit, reset string) Option {
	return func(s *Screen) {
		if submit = strings.TrimSpace(submit); submit != "" {
			s.submitLabel = submit
		}
		if reset = strings.TrimSpace(reset); reset != "" {
			s.resetLabel = reset
		}
	}
}

// Screen is a form together with the fields it renders and its actions.
type Screen struct {
	title       string
	form        *form.Form
	fields      []*form.Field
	notifier    notify.Notifier
	logger      *slog.Logger
	submitLabel string
	resetLabel  string
}

// New builds a screen over f. Fields are rendered in the given order.
func New(f *form.Form, fields []*form.Field, options ...Option) (*Screen, error) {
	if f == nil {
		return nil, ErrNilForm
	}
	for _, field := range fields {
		if field == nil || field.Form() != f {
			return nil, ErrForeignField
		}
	}

	s := &Screen{
		form:        f,
		fields:      append([]*form.Field(nil), fields...),
		notifier:    notify.LogNotifier{Level: slog.LevelInfo},
		logger:      slog.New(slog.DiscardHandler),
		submitLabel: "Submit",
		resetLabel:  "Reset",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Title returns the title key.
func (s *Screen) Title() string { return s.title }

// Form returns the underlying form.
func (s *Screen) Form() *form.Form { return s.form }

// Fields returns the bound fields in render order.
func (s *Screen) Fields() []*form.Field {
	return append([]*form.Field(nil), s.fields...)
}

// Field looks a bound field up by name.
func (s *Screen) Field(name string) (*form.Field, bool) {
	for _, field := range s.fields {
		if field.Name() == name {
			return field, true
		}
	}
	return nil, false
}

// CanSubmit mirrors form validity; the submit action is disabled otherwise.
func (s *Screen) CanSubmit() bool { return s.form.IsValid() }

// Actions returns submit then reset, with submit disabled while invalid.
func (s *Screen) Actions() []Action {
	return []Action{
		{ID: ActionSubmit, Label: s.submitLabel, Disabled: !s.CanSubmit()},
		{ID: ActionReset, Label: s.resetLabel},
	}
}

// Submit validates every field and, when they all pass, sends the values
// serialized as JSON to the notifier under SubmitTitle. It reports whether
// the notifier was called.
func (s *Screen) Submit(ctx context.Context) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ok, err := s.form.Submit(func(values form.Snapshot) error {
		payload, err := values.MarshalJSON()
		if err != nil {
			return fmt.Errorf("screen: encode values: %w", err)
		}
		return s.notifier.Notify(ctx, SubmitTitle, string(payload))
	})
	if err != nil {
		s.logger.Error("screen: submit failed", "form_id", s.form.ID(), "error", err)
		return ok, err
	}
	s.logger.Debug("screen: submitted", "form_id", s.form.ID(), "valid", ok)
	return ok, nil
}

// Reset restores every field to its default.
func (s *Screen) Reset() {
	s.form.Reset()
	s.logger.Debug("screen: reset", "form_id", s.form.ID())
}

// Trigger runs an action by id. Submitting while invalid is a no-op that
// still surfaces every error.
func (s *Screen) Trigger(ctx context.Context, actionID string) (bool, error) {
	switch actionID {
	case ActionSubmit:
		return s.Submit(ctx)
	case ActionReset:
		s.Reset()
		return true, nil
	default:
		return false, fmt.Errorf("screen: unknown action %q", actionID)
	}
}
