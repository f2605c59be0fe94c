package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/screen"
)

const (
	defaultMaxAttempts = 3
	secretMask         = "********"
)

// ErrTooManyAttempts is returned by the linear flow when a field stays
// invalid after the allowed number of prompts.
var ErrTooManyAttempts = errors.New("tui: too many invalid attempts")

// Renderer implements render.Renderer for terminal sessions. It drives the
// screen through a Prompter and returns the final values.
type Renderer struct {
	prompter     Prompter
	out          io.Writer
	outputFormat OutputFormat
	flow         Flow
	maxAttempts  int
	prefixes     Prefixes
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a renderer using survey prompts, the menu flow and JSON output
// unless options say otherwise.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		flow:         FlowMenu,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.prompter == nil {
		r.prompter = newSurveyPrompter(r.out)
	}
	if r.flow != FlowMenu && r.flow != FlowLinear {
		return nil, fmt.Errorf("tui: unknown flow %q", r.flow)
	}
	if _, err := ParseOutputFormat(string(r.outputFormat)); err != nil {
		return nil, err
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the interactive session and serializes the values the screen
// holds when it ends.
func (r *Renderer) Render(ctx context.Context, s render.Screen, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("tui: screen is required")
	}

	var err error
	switch r.flow {
	case FlowLinear:
		err = r.runLinear(ctx, s, opts)
	default:
		err = r.runMenu(ctx, s, opts)
	}
	if err != nil {
		return nil, err
	}
	return r.serialize(s, opts)
}

func (r *Renderer) runMenu(ctx context.Context, s render.Screen, opts render.RenderOptions) error {
	l := opts.Localizer()
	fields := s.Fields()
	selected := 0

	for {
		view := render.NewView(s, opts)
		options := make([]string, 0, len(view.Fields)+len(view.Actions)+1)
		for _, field := range view.Fields {
			options = append(options, fieldOption(field))
		}
		for _, action := range view.Actions {
			label := action.Label
			if action.Disabled {
				label += " (" + l.T("disabled") + ")"
			}
			options = append(options, label)
		}
		doneIdx := len(options)
		options = append(options, l.T("Done"))

		idx, err := r.prompter.Choose(ctx, Menu{
			Title:  r.prefixes.Prompt + view.Title,
			Items:  options,
			Cursor: selected,
		})
		if err != nil {
			return err
		}
		selected = idx

		switch {
		case idx >= 0 && idx < len(fields):
			if err := r.editField(ctx, fields[idx], view.Fields[idx]); err != nil {
				return err
			}
		case idx >= len(fields) && idx < doneIdx:
			action := view.Actions[idx-len(fields)]
			if action.Disabled {
				continue
			}
			if _, err := s.Trigger(ctx, action.ID); err != nil {
				return err
			}
		case idx == doneIdx:
			if s.CanSubmit() {
				return nil
			}
			leave, err := r.prompter.Confirm(ctx, r.prefixes.Prompt+l.T("Some fields are invalid. Exit anyway?"))
			if err != nil {
				return err
			}
			if leave {
				return nil
			}
		default:
			return fmt.Errorf("tui: menu index %d out of range", idx)
		}
	}
}

func (r *Renderer) runLinear(ctx context.Context, s render.Screen, opts render.RenderOptions) error {
	fields := s.Fields()
	for i, field := range fields {
		for attempt := 1; ; attempt++ {
			view := render.NewView(s, opts)
			if err := r.editField(ctx, field, view.Fields[i]); err != nil {
				return err
			}
			if field.Error() == "" {
				break
			}
			if attempt >= r.maxAttempts {
				return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name())
			}
		}
	}
	if !s.CanSubmit() {
		return nil
	}
	_, err := s.Trigger(ctx, screen.ActionSubmit)
	return err
}

// editField asks for a new value, writes it through the binder and blurs the
// field. An empty answer keeps the current value of a secret field.
func (r *Renderer) editField(ctx context.Context, field *form.Field, view render.FieldView) error {
	answer, err := r.prompter.AskField(ctx, FieldPrompt{
		Label:       r.prefixes.Prompt + view.Label,
		Value:       view.Value,
		Placeholder: view.Placeholder,
		Secret:      view.Secret,
	})
	if err != nil {
		return err
	}
	if view.Secret && answer == "" {
		answer = view.Value
	}

	field.OnChange(answer)
	field.OnBlur()

	if msg := field.Error(); msg != "" {
		return r.prompter.Notice(ctx, r.prefixes.Error+msg)
	}
	return nil
}

func fieldOption(field render.FieldView) string {
	value := field.Value
	if field.Secret && value != "" {
		value = secretMask
	}
	option := field.Label + ": " + value
	if field.Error != "" {
		option += " (" + field.Error + ")"
	}
	return option
}

func (r *Renderer) serialize(s render.Screen, opts render.RenderOptions) ([]byte, error) {
	fields := s.Fields()
	names := make([]string, 0, len(fields))
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		names = append(names, field.Name())
		values[field.Name()] = field.Value()
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, name := range names {
			encoded.Set(name, values[name])
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		view := render.NewView(s, opts)
		var b strings.Builder
		for _, field := range view.Fields {
			value := field.Value
			if field.Secret {
				value = secretMask
			}
			fmt.Fprintf(&b, "%s: %s\n", field.Label, value)
		}
		return []byte(b.String()), nil
	default:
		return form.NewSnapshot(names, values).MarshalJSON()
	}
}
