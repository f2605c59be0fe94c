package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formbind/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Transformer mutates a Definition after it is resolved and before the
// screen is built.
type Transformer interface {
	Transform(ctx context.Context, def *schema.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *schema.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *schema.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document:
//
//	title: Sign up
//	submitLabel: Create
//	fields:
//	  username:
//	    label: Handle
//	    default: ""
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title       string                `yaml:"title"`
	Mode        string                `yaml:"mode"`
	SubmitLabel string                `yaml:"submitLabel"`
	ResetLabel  string                `yaml:"resetLabel"`
	Fields      map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label       string  `yaml:"label"`
	Placeholder string  `yaml:"placeholder"`
	Default     *string `yaml:"default"`
	ReturnKey   string  `yaml:"returnKey"`
	Secret      *bool   `yaml:"secret"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Unknown field names are an error.
func (t *PresetTransformer) Transform(ctx context.Context, def *schema.Definition) error {
	if def == nil {
		return errors.New("preset transformer: definition is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	setIf(&def.Title, doc.Title)
	setIf(&def.Mode, doc.Mode)
	setIf(&def.SubmitLabel, doc.SubmitLabel)
	setIf(&def.ResetLabel, doc.ResetLabel)

	for name, patch := range doc.Fields {
		idx := fieldIndex(def.Fields, name)
		if idx < 0 {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		field := &def.Fields[idx]
		setIf(&field.Label, patch.Label)
		setIf(&field.Placeholder, patch.Placeholder)
		setIf(&field.ReturnKey, patch.ReturnKey)
		if patch.Default != nil {
			field.Default = *patch.Default
		}
		if patch.Secret != nil {
			field.Secret = *patch.Secret
		}
	}
	return nil
}

func setIf(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func fieldIndex(fields []schema.FieldDef, name string) int {
	name = strings.TrimSpace(name)
	for idx, field := range fields {
		if strings.TrimSpace(field.Name) == name {
			return idx
		}
	}
	return -1
}
