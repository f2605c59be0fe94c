package tui

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormat selects how Render serializes the final values.
type OutputFormat string

// Output formats.
const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
	OutputFormatPrettyText     OutputFormat = "pretty"
)

// ParseOutputFormat accepts json, form or pretty. Empty means json.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return OutputFormatJSON, nil
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return f, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", raw)
	}
}

// Flow selects how the renderer walks the screen.
//
// FlowMenu loops over a menu of field rows and actions until Done.
// FlowLinear prompts each field in order and submits when the form is valid.
type Flow string

// Flows.
const (
	FlowMenu   Flow = "menu"
	FlowLinear Flow = "linear"
)

// Prefixes are prepended to prompt titles and error notices.
type Prefixes struct {
	Prompt string
	Error  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPrompter replaces the survey-backed prompter.
func WithPrompter(p Prompter) Option {
	return func(r *Renderer) {
		if p != nil {
			r.prompter = p
		}
	}
}

// WithOutput is where the survey prompter prints notices.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

func WithFlow(flow Flow) Option {
	return func(r *Renderer) {
		if flow != "" {
			r.flow = flow
		}
	}
}

// WithMaxAttempts caps re-prompts of an invalid field in the linear flow.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func WithPrefixes(p Prefixes) Option {
	return func(r *Renderer) { r.prefixes = p }
}
