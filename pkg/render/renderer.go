package render

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/screen"
)

// Screen is the part of a form screen renderers draw and drive.
type Screen interface {
	Title() string
	Fields() []*form.Field
	Actions() []screen.Action
	CanSubmit() bool
	Trigger(ctx context.Context, actionID string) (bool, error)
}

var _ Screen = (*screen.Screen)(nil)

// Renderer turns a Screen into bytes (HTML, a terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, s Screen, options RenderOptions) ([]byte, error)
}
