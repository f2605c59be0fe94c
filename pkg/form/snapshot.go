package form

import (
	"bytes"
	"encoding/json"
)

// Snapshot is an immutable copy of the form state that keeps field
// declaration order. It serialises to a JSON object in that order.
type Snapshot struct {
	names  []string
	values map[string]string
}

// NewSnapshot copies values in the order given by names. Names missing from
// values are recorded with an empty string.
func NewSnapshot(names []string, values map[string]string) Snapshot {
	out := Snapshot{
		names:  append([]string(nil), names...),
		values: make(map[string]string, len(names)),
	}
	for _, name := range names {
		out.values[name] = values[name]
	}
	return out
}

// Get returns the value recorded for name.
func (s Snapshot) Get(name string) string {
	return s.values[name]
}

// Lookup returns the value recorded for name and whether it exists.
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the field names in declaration order.
func (s Snapshot) Names() []string {
	return append([]string(nil), s.names...)
}

// Len reports the number of fields.
func (s Snapshot) Len() int {
	return len(s.names)
}

// Map returns a mutable copy of the values.
func (s Snapshot) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the snapshot as an object whose keys follow declaration
// order. HTML characters are not escaped.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, s.values[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the JSON form, or an empty object if encoding fails.
func (s Snapshot) String() string {
	raw, err := s.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// writeJSONString encodes value like JSON.stringify does: HTML characters and
// the U+2028/U+2029 separators are written unescaped.
func writeJSONString(buf *bytes.Buffer, value string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	encoded := bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))
	for i := 0; i < len(encoded); i++ {
		if encoded[i] != '\\' || i+1 >= len(encoded) {
			buf.WriteByte(encoded[i])
			continue
		}
		switch string(encoded[i+1 : min(i+6, len(encoded))]) {
		case "u2028":
			buf.WriteRune('\u2028')
			i += 5
		case "u2029":
			buf.WriteRune('\u2029')
			i += 5
		default:
			buf.Write(encoded[i : i+2])
			i++
		}
	}
	return nil
}
