// Package schema describes form screens declaratively. A Definition lists the
// fields of a screen in render order, their defaults and their rules, and can
// be built into a screen.Screen backed by a live form.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/rules"
)

// ErrInvalidDefinition wraps every structural problem found in a Definition.
var ErrInvalidDefinition = errors.New("schema: invalid definition")

// Rule kinds accepted in definitions. equalTo is the declarative cross-field
// rule; the remaining kinds map one to one onto pkg/rules.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEqualTo   = "equalTo"
)

// PresetEmail selects rules.EmailPattern for a pattern rule.
const PresetEmail = "email"

// Definition is a declarative screen.
type Definition struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title,omitempty" yaml:"title,omitempty"`
	Mode           string     `json:"mode,omitempty" yaml:"mode,omitempty"`
	ReValidateMode string     `json:"reValidateMode,omitempty" yaml:"reValidateMode,omitempty"`
	SubmitLabel    string     `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	ResetLabel     string     `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty"`
	Fields         []FieldDef `json:"fields" yaml:"fields"`
}

// FieldDef declares one field.
type FieldDef struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     string    `json:"default,omitempty" yaml:"default,omitempty"`
	Secret      bool      `json:"secret,omitempty" yaml:"secret,omitempty"`
	ReturnKey   string    `json:"returnKey,omitempty" yaml:"returnKey,omitempty"`
	Rules       []RuleDef `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// RuleDef declares one rule. Which attributes apply depends on Kind.
type RuleDef struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Value   int    `json:"value,omitempty" yaml:"value,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Preset  string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
}

// Parse decodes a JSON or YAML definition and validates it.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return Definition{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}
	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("schema: %s: %w", source, err)
	}
	return def, nil
}

// Validate checks field names, rule kinds and cross-field references.
func (d Definition) Validate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidDefinition)
	}
	if _, err := parseMode(d.Mode); err != nil {
		return fmt.Errorf("%w: mode: %v", ErrInvalidDefinition, err)
	}
	if _, err := parseMode(d.ReValidateMode); err != nil {
		return fmt.Errorf("%w: reValidateMode: %v", ErrInvalidDefinition, err)
	}

	names := make(map[string]struct{}, len(d.Fields))
	for i, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidDefinition, i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidDefinition, name)
		}
		names[name] = struct{}{}
	}

	for _, field := range d.Fields {
		for j, def := range field.Rules {
			if def.Kind == RuleEqualTo {
				other := strings.TrimSpace(def.Field)
				if _, ok := names[other]; !ok {
					return fmt.Errorf("%w: field %q rule %d references unknown field %q", ErrInvalidDefinition, field.Name, j, def.Field)
				}
			}
			if _, err := def.Rule(); err != nil {
				return fmt.Errorf("%w: field %q rule %d: %v", ErrInvalidDefinition, field.Name, j, err)
			}
		}
	}
	return nil
}

// Rule converts the declaration into a rules.Rule.
func (r RuleDef) Rule() (rules.Rule, error) {
	var rule rules.Rule
	switch strings.TrimSpace(r.Kind) {
	case RuleRequired:
		rule = rules.Required(r.Message)
	case RuleMinLength:
		rule = rules.MinLength(r.Value, r.Message)
	case RuleMaxLength:
		rule = rules.MaxLength(r.Value, r.Message)
	case RulePattern:
		switch {
		case r.Preset == PresetEmail:
			rule = rules.Pattern(rules.EmailPattern, r.Message)
		case r.Preset != "":
			return rules.Rule{}, fmt.Errorf("unknown preset %q", r.Preset)
		case r.Pattern == "":
			return rules.Rule{}, errors.New("pattern rule needs a pattern or a preset")
		default:
			compiled, err := rules.PatternString(r.Pattern, r.Message)
			if err != nil {
				return rules.Rule{}, err
			}
			rule = compiled
		}
	case RuleEqualTo:
		rule = rules.EqualTo(strings.TrimSpace(r.Field), r.Message)
	default:
		return rules.Rule{}, fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	if err := rule.Validate(); err != nil {
		return rules.Rule{}, err
	}
	return rule, nil
}

// RuleSet converts every rule of the field, in declaration order.
func (f FieldDef) RuleSet() ([]rules.Rule, error) {
	out := make([]rules.Rule, 0, len(f.Rules))
	for i, def := range f.Rules {
		rule, err := def.Rule()
		if err != nil {
			return nil, fmt.Errorf("%w: field %q rule %d: %v", ErrInvalidDefinition, f.Name, i, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

// Field returns the named field declaration.
func (d Definition) Field(name string) (FieldDef, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDef{}, false
}

// Defaults returns the declared defaults keyed by field name.
func (d Definition) Defaults() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, field := range d.Fields {
		out[field.Name] = field.Default
	}
	return out
}

func parseMode(raw string) (form.Mode, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return form.ParseMode(raw)
}
