package snapshot

import "html/template"

// Payload is either pre-rendered HTML or a structured value to serialize.
// Use PreRendered, Structured or PayloadOf to build one.
type Payload struct {
	html     string
	value    any
	rendered bool
}

// PreRendered wraps markup that is written out unchanged.
func PreRendered(html string) Payload {
	return Payload{html: html, rendered: true}
}

// Structured wraps a value that is serialized and embedded in the template.
func Structured(value any) Payload {
	return Payload{value: value}
}

// PayloadOf resolves a response value at the call boundary: strings and
// template.HTML are treated as pre-rendered HTML, Payload values are kept and
// everything else is structured.
func PayloadOf(v any) Payload {
	switch p := v.(type) {
	case Payload:
		return p
	case string:
		return PreRendered(p)
	case template.HTML:
		return PreRendered(string(p))
	default:
		return Structured(v)
	}
}

// IsPreRendered reports whether the payload is passed through.
func (p Payload) IsPreRendered() bool { return p.rendered }

// HTML returns the pre-rendered markup.
func (p Payload) HTML() string { return p.html }

// Value returns the structured value.
func (p Payload) Value() any { return p.value }
