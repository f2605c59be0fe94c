package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// FormatAdapter turns a raw document into form definitions keyed by id.
type FormatAdapter interface {
	Name() string
	Detect(doc schema.Document) bool
	Definitions(ctx context.Context, doc schema.Document) (map[string]schema.Definition, error)
}

// ErrNoAdapter is returned when no registered adapter recognizes a document.
var ErrNoAdapter = errors.New("orchestrator: no adapter accepts document")

// AdapterRegistry holds format adapters in priority order. The first adapter
// whose Detect accepts a document handles it.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters []FormatAdapter
}

// NewAdapterRegistry registers adapters in the given order.
func NewAdapterRegistry(adapters ...FormatAdapter) *AdapterRegistry {
	r := &AdapterRegistry{}
	for _, adapter := range adapters {
		r.MustRegister(adapter)
	}
	return r
}

// DefaultAdapters returns the native definition adapter followed by the
// OpenAPI adapter.
func DefaultAdapters() *AdapterRegistry {
	return NewAdapterRegistry(DefinitionAdapter{}, NewOpenAPIAdapter(openapi.New()))
}

// Register appends adapter with the lowest priority so far. Names must be
// unique ignoring case.
func (r *AdapterRegistry) Register(adapter FormatAdapter) error {
	if adapter == nil {
		return errors.New("orchestrator: adapter is required")
	}
	name := strings.TrimSpace(adapter.Name())
	if name == "" {
		return errors.New("orchestrator: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.adapters {
		if strings.EqualFold(existing.Name(), name) {
			return fmt.Errorf("orchestrator: adapter %q already registered", name)
		}
	}
	r.adapters = append(r.adapters, adapter)
	return nil
}

func (r *AdapterRegistry) MustRegister(adapter FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Names lists adapters in priority order.
func (r *AdapterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.adapters))
	for i, adapter := range r.adapters {
		names[i] = adapter.Name()
	}
	return names
}

// ForDocument returns the highest priority adapter that accepts doc.
func (r *AdapterRegistry) ForDocument(doc schema.Document) (FormatAdapter, error) {
	if r != nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, adapter := range r.adapters {
			if adapter.Detect(doc) {
				return adapter, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAdapter, doc.Location())
}

// DefinitionAdapter reads native JSON/YAML form definitions.
type DefinitionAdapter struct{}

// Name implements FormatAdapter.
func (DefinitionAdapter) Name() string { return "definition" }

// Detect accepts documents with a top-level "fields" key and no "openapi" key.
func (DefinitionAdapter) Detect(doc schema.Document) bool {
	return doc.HasKey("fields") && !doc.HasKey("openapi")
}

// Definitions parses doc as a single definition keyed by its id.
func (DefinitionAdapter) Definitions(ctx context.Context, doc schema.Document) (map[string]schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, err := doc.Definition()
	if err != nil {
		return nil, err
	}
	return map[string]schema.Definition{def.ID: def}, nil
}

// OpenAPIAdapter derives definitions from OpenAPI request bodies.
type OpenAPIAdapter struct {
	parser *openapi.Parser
}

// NewOpenAPIAdapter wraps parser; nil uses the default parser.
func NewOpenAPIAdapter(parser *openapi.Parser) OpenAPIAdapter {
	if parser == nil {
		parser = openapi.New()
	}
	return OpenAPIAdapter{parser: parser}
}

// Name implements FormatAdapter.
func (OpenAPIAdapter) Name() string { return "openapi" }

// Detect accepts documents with a top-level "openapi" key.
func (OpenAPIAdapter) Detect(doc schema.Document) bool {
	return doc.HasKey("openapi")
}

// Definitions implements FormatAdapter.
func (a OpenAPIAdapter) Definitions(ctx context.Context, doc schema.Document) (map[string]schema.Definition, error) {
	return a.parser.Definitions(ctx, doc)
}
