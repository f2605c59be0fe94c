package schema

import (
	"errors"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a raw definition payload together with where it was read from.
// The top-level keys are indexed once so format adapters can sniff the
// payload without decoding it again.
type Document struct {
	source Source
	raw    []byte
	keys   map[string]struct{}
}

// NewDocument copies raw and indexes its top-level keys. A payload that is not
// a JSON or YAML mapping still yields a document with no keys.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("schema: source is required")
	case len(raw) == 0:
		return Document{}, errors.New("schema: raw document is empty")
	}
	doc := Document{source: src, raw: append([]byte(nil), raw...)}

	var top map[string]yaml.Node
	if yaml.Unmarshal(doc.raw, &top) == nil {
		doc.keys = make(map[string]struct{}, len(top))
		for key := range top {
			doc.keys[key] = struct{}{}
		}
	}
	return doc, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location is the path or fs name of the source.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Name is the base name of the location without its extension, so
// "forms/account.yaml" names "account".
func (d Document) Name() string {
	base := path.Base(strings.ReplaceAll(d.Location(), `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// HasKey reports whether the payload has key at its top level.
func (d Document) HasKey(key string) bool {
	_, ok := d.keys[key]
	return ok
}

// Definition parses the payload as a native form definition. A definition
// without an id takes the document name.
func (d Document) Definition() (Definition, error) {
	def, err := Parse(d.raw, d.Location())
	if err != nil {
		return Definition{}, err
	}
	if strings.TrimSpace(def.ID) == "" {
		def.ID = d.Name()
	}
	return def, nil
}
