package render

import (
	"github.com/goliatone/go-formbind/pkg/screen"
	"github.com/goliatone/go-formbind/pkg/theme"
)

// View is a render-ready copy of a Screen. Title, labels, placeholders and
// action labels are translated; error messages are copied verbatim.
type View struct {
	Locale    string        `json:"locale,omitempty"`
	Title     string        `json:"title,omitempty"`
	Fields    []FieldView   `json:"fields"`
	Actions   []ActionView  `json:"actions"`
	CanSubmit bool          `json:"canSubmit"`
	Palette   theme.Palette `json:"palette"`
}

// FieldView is one input of a View.
type FieldView struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder,omitempty"`
	Value        string `json:"value"`
	Error        string `json:"error,omitempty"`
	Secret       bool   `json:"secret,omitempty"`
	ReturnKey    string `json:"returnKey"`
	BlurOnSubmit bool   `json:"blurOnSubmit,omitempty"`
	Touched      bool   `json:"touched,omitempty"`
	Dirty        bool   `json:"dirty,omitempty"`
}

// ActionView is one button of a View.
type ActionView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Color    string `json:"color"`
}

// NewView snapshots s for rendering.
func NewView(s Screen, opts RenderOptions) View {
	l := opts.Localizer()
	palette := opts.ResolvedPalette()

	view := View{
		Locale:    opts.Locale,
		Title:     l.T(s.Title()),
		CanSubmit: s.CanSubmit(),
		Palette:   palette,
	}
	for _, field := range s.Fields() {
		label := field.Label()
		if label == "" {
			label = field.Name()
		}
		view.Fields = append(view.Fields, FieldView{
			Name:         field.Name(),
			Label:        l.T(label),
			Placeholder:  l.T(field.Placeholder()),
			Value:        field.Value(),
			Error:        field.Error(),
			Secret:       field.Secret(),
			ReturnKey:    field.ReturnKey(),
			BlurOnSubmit: field.BlurOnSubmit(),
			Touched:      field.Touched(),
			Dirty:        field.Dirty(),
		})
	}
	for _, action := range s.Actions() {
		color := palette.Primary
		if action.ID == screen.ActionSubmit {
			color = palette.ButtonColor(!action.Disabled)
		}
		view.Actions = append(view.Actions, ActionView{
			ID:       action.ID,
			Label:    l.T(action.Label),
			Disabled: action.Disabled,
			Color:    color,
		})
	}
	return view
}

// Field returns the named field view.
func (v View) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}
