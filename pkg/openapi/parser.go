package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// ErrOperationNotFound is returned by Definition for unknown operation ids.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// ParserOptions toggles document handling.
type ParserOptions struct {
	// ResolveReferences allows external $refs and validates the document.
	ResolveReferences bool
	// MediaTypes lists the request body media types tried in order.
	MediaTypes []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles reference resolution and validation.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithMediaTypes replaces the request body media types.
func WithMediaTypes(types ...string) ParserOption {
	return func(opts *ParserOptions) {
		if len(types) > 0 {
			opts.MediaTypes = append([]string(nil), types...)
		}
	}
}

// Parser converts OpenAPI documents into form definitions using kin-openapi.
type Parser struct {
	options ParserOptions
}

// New constructs a Parser.
func New(options ...ParserOption) *Parser {
	cfg := ParserOptions{
		ResolveReferences: true,
		MediaTypes:        []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Parser{options: cfg}
}

// Definitions returns one definition per operation with an object request
// body, keyed by operation id ("post:/path" when the id is missing).
func (p *Parser) Definitions(ctx context.Context, doc schema.Document) (map[string]schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	out := make(map[string]schema.Definition)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			def, ok, err := p.convertOperation(method, path, operation)
			if err != nil {
				return nil, err
			}
			if ok {
				out[def.ID] = def
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("openapi parser: no operations with an object request body")
	}
	return out, nil
}

// Definition returns the definition derived from a single operation.
func (p *Parser) Definition(ctx context.Context, doc schema.Document, operationID string) (schema.Definition, error) {
	defs, err := p.Definitions(ctx, doc)
	if err != nil {
		return schema.Definition{}, err
	}
	def, ok := defs[operationID]
	if !ok {
		return schema.Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return def, nil
}

// OperationIDs lists the ids in a definitions map in sorted order.
func OperationIDs(defs map[string]schema.Definition) []string {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Parser) convertOperation(method, path string, operation *openapi3.Operation) (schema.Definition, bool, error) {
	body := p.requestSchema(operation.RequestBody)
	if body == nil || !isType(body.Type, openapi3.TypeObject) || len(body.Properties) == 0 {
		return schema.Definition{}, false, nil
	}

	id := strings.TrimSpace(operation.OperationID)
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	title := operation.Summary
	if title == "" {
		title = body.Title
	}
	def := schema.Definition{ID: id, Title: title}
	ext := extension(operation.Extensions)
	if v := ext.String("title"); v != "" {
		def.Title = v
	}
	def.Mode = ext.String("mode")
	def.ReValidateMode = ext.String("reValidateMode")
	def.SubmitLabel = ext.String("submitLabel")
	def.ResetLabel = ext.String("resetLabel")

	def.Fields = convertProperties(body)
	if err := def.Validate(); err != nil {
		return schema.Definition{}, false, fmt.Errorf("openapi parser: operation %q: %w", id, err)
	}
	return def, true, nil
}

func (p *Parser) requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range p.options.MediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func isType(types *openapi3.Types, want string) bool {
	if types == nil {
		return false
	}
	for _, t := range types.Slice() {
		if t == want {
			return true
		}
	}
	return false
}
