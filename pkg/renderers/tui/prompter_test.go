package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestSurveyPrompter_ChooseKeepsDuplicateRows(t *testing.T) {
	var asked *survey.Select
	p := newSurveyPrompter(&bytes.Buffer{})
	p.ask = func(prompt survey.Prompt, response any, _ ...survey.AskOpt) error {
		asked = prompt.(*survey.Select)
		*response.(*int) = 2
		return nil
	}

	menu := Menu{Title: "Account", Items: []string{"Submit", "Reset", "Submit", "Done"}, Cursor: 2}
	idx, err := p.Choose(context.Background(), menu)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if idx != 2 {
		t.Fatalf("expected the second Submit row, got %d", idx)
	}
	if asked.Default != 2 || asked.PageSize != 4 {
		t.Fatalf("unexpected select prompt %+v", asked)
	}
}

func TestSurveyPrompter_AskFieldAndInterrupt(t *testing.T) {
	p := newSurveyPrompter(&bytes.Buffer{})
	var prompts []survey.Prompt
	p.ask = func(prompt survey.Prompt, response any, _ ...survey.AskOpt) error {
		prompts = append(prompts, prompt)
		if len(prompts) == 2 {
			return terminal.InterruptErr
		}
		*response.(*string) = "ana"
		return nil
	}

	got, err := p.AskField(context.Background(), FieldPrompt{Label: "Username", Value: "test"})
	if err != nil || got != "ana" {
		t.Fatalf("AskField = %q, %v", got, err)
	}
	if input, ok := prompts[0].(*survey.Input); !ok || input.Default != "test" {
		t.Fatalf("expected input prompt with default, got %#v", prompts[0])
	}

	_, err = p.AskField(context.Background(), FieldPrompt{Label: "Password", Secret: true})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, ok := prompts[1].(*survey.Password); !ok {
		t.Fatalf("expected password prompt, got %#v", prompts[1])
	}
}

func TestSurveyPrompter_Notice(t *testing.T) {
	var out bytes.Buffer
	p := newSurveyPrompter(&out)
	if err := p.Notice(context.Background(), "Invalid Email."); err != nil {
		t.Fatalf("notice: %v", err)
	}
	if out.String() != "Invalid Email.\n" {
		t.Fatalf("unexpected notice output %q", out.String())
	}
}
