package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt with Ctrl+C.
var ErrAborted = errors.New("tui: aborted")

// FieldPrompt describes one value request for a form field.
type FieldPrompt struct {
	Label       string
	Value       string
	Placeholder string
	Secret      bool
}

// Menu lists the field rows and actions of a screen.
type Menu struct {
	Title  string
	Items  []string
	Cursor int
}

// Prompter is the terminal surface the renderer talks to. Tests script it.
type Prompter interface {
	AskField(ctx context.Context, p FieldPrompt) (string, error)
	Choose(ctx context.Context, m Menu) (int, error)
	Confirm(ctx context.Context, question string) (bool, error)
	Notice(ctx context.Context, msg string) error
}

type surveyPrompter struct {
	out io.Writer
	ask func(survey.Prompt, any, ...survey.AskOpt) error
}

func newSurveyPrompter(out io.Writer) *surveyPrompter {
	if out == nil {
		out = os.Stdout
	}
	return &surveyPrompter{out: out, ask: survey.AskOne}
}

func (p *surveyPrompter) AskField(ctx context.Context, fp FieldPrompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt survey.Prompt = &survey.Input{
		Message: fp.Label,
		Default: fp.Value,
		Help:    fp.Placeholder,
	}
	if fp.Secret {
		// survey never echoes a default for passwords
		prompt = &survey.Password{Message: fp.Label, Help: fp.Placeholder}
	}
	var answer string
	if err := p.ask(prompt, &answer); err != nil {
		return "", surveyErr(err)
	}
	return answer, nil
}

// Choose returns the position survey reports, so rows with the same text
// stay distinguishable.
func (p *surveyPrompter) Choose(ctx context.Context, m Menu) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := &survey.Select{
		Message:  m.Title,
		Options:  m.Items,
		PageSize: len(m.Items),
	}
	if m.Cursor >= 0 && m.Cursor < len(m.Items) {
		prompt.Default = m.Cursor
	}
	picked := -1
	if err := p.ask(prompt, &picked); err != nil {
		return 0, surveyErr(err)
	}
	return picked, nil
}

func (p *surveyPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var yes bool
	if err := p.ask(&survey.Confirm{Message: question}, &yes); err != nil {
		return false, surveyErr(err)
	}
	return yes, nil
}

func (p *surveyPrompter) Notice(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

func surveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
