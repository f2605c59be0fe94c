package openapi

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/schema"
)

const extensionNamespace = "x-formbind"

// Default messages for rules that carry no x-formbind message.
const (
	messageRequired  = "%s is required."
	messageMinLength = "The minimum length is %d."
	messageMaxLength = "The maximum length is %d."
	messagePattern   = "Invalid %s."
	messageEqualTo   = "%s do not match"
)

type property struct {
	name   string
	order  int
	schema *openapi3.Schema
}

func convertProperties(body *openapi3.Schema) []schema.FieldDef {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	props := make([]property, 0, len(body.Properties))
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if isType(ref.Value.Type, openapi3.TypeObject) || isType(ref.Value.Type, openapi3.TypeArray) {
			continue
		}
		order, ok := extension(ref.Value.Extensions).Int("order")
		if !ok {
			order = math.MaxInt
		}
		props = append(props, property{name: name, order: order, schema: ref.Value})
	}
	sort.SliceStable(props, func(i, j int) bool {
		if props[i].order != props[j].order {
			return props[i].order < props[j].order
		}
		return props[i].name < props[j].name
	})

	fields := make([]schema.FieldDef, 0, len(props))
	for _, prop := range props {
		fields = append(fields, convertProperty(prop.name, prop.schema, required[prop.name]))
	}
	return fields
}

func convertProperty(name string, src *openapi3.Schema, required bool) schema.FieldDef {
	ext := extension(src.Extensions)
	label := ext.String("label")
	if label == "" {
		label = src.Title
	}
	if label == "" {
		label = name
	}

	field := schema.FieldDef{
		Name:        name,
		Label:       label,
		Placeholder: ext.String("placeholder"),
		Default:     stringify(src.Default),
		Secret:      src.Format == "password" || ext.Bool("secret"),
		ReturnKey:   ext.String("returnKey"),
	}
	messages := ext.Map("messages")

	if src.MaxLength != nil {
		n := int(*src.MaxLength)
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RuleMaxLength,
			Value:   n,
			Message: messages.StringOr(schema.RuleMaxLength, fmt.Sprintf(messageMaxLength, n)),
		})
	}
	if src.MinLength > 0 {
		n := int(src.MinLength)
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RuleMinLength,
			Value:   n,
			Message: messages.StringOr(schema.RuleMinLength, fmt.Sprintf(messageMinLength, n)),
		})
	}
	if required {
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RuleRequired,
			Message: messages.StringOr(schema.RuleRequired, fmt.Sprintf(messageRequired, label)),
		})
	}
	switch {
	case src.Pattern != "":
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RulePattern,
			Pattern: src.Pattern,
			Message: messages.StringOr(schema.RulePattern, fmt.Sprintf(messagePattern, label)),
		})
	case src.Format == "email":
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RulePattern,
			Preset:  schema.PresetEmail,
			Message: messages.StringOr(schema.RulePattern, fmt.Sprintf(messagePattern, label)),
		})
	}
	if other := ext.String("equalTo"); other != "" {
		field.Rules = append(field.Rules, schema.RuleDef{
			Kind:    schema.RuleEqualTo,
			Field:   other,
			Message: messages.StringOr(schema.RuleEqualTo, fmt.Sprintf(messageEqualTo, label)),
		})
	}
	return field
}

// extensionMap reads the decoded x-formbind extension object.
type extensionMap map[string]any

func extension(raw map[string]any) extensionMap {
	if raw == nil {
		return nil
	}
	m, _ := raw[extensionNamespace].(map[string]any)
	return m
}

func (m extensionMap) String(key string) string {
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}

func (m extensionMap) StringOr(key, fallback string) string {
	if v := m.String(key); v != "" {
		return v
	}
	return fallback
}

func (m extensionMap) Bool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

func (m extensionMap) Int(key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func (m extensionMap) Map(key string) extensionMap {
	v, _ := m[key].(map[string]any)
	return v
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
