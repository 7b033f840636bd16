package snapshot

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Serializer converts a structured payload to its string form.
type Serializer interface {
	Serialize(value any) (string, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc func(value any) (string, error)

// Serialize calls f.
func (f SerializerFunc) Serialize(value any) (string, error) { return f(value) }

// JSONSerializer encodes values as compact JSON. HTML characters are left
// as-is; the renderer escapes them itself.
type JSONSerializer struct {
	Indent string
}

// Serialize implements Serializer.
func (s JSONSerializer) Serialize(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if s.Indent != "" {
		enc.SetIndent("", s.Indent)
	}
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
