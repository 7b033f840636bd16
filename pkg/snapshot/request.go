package snapshot

// Format is the output format requested by the caller.
type Format int

const (
	FormatOther Format = iota
	FormatHTML
	FormatJSONReport
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatJSONReport:
		return "jsonreport"
	default:
		return "other"
	}
}

// RenderRequest carries the per-call metadata for a render. It is built per
// request and never mutated by the renderer.
type RenderRequest struct {
	AbsoluteURL   string
	OperationName string
	Format        Format
	StatusCode    int
	// OperationDoc is optional, already sanitized markup shown below the
	// header.
	OperationDoc string
}

// Outcome is the result of a render: either Delegated, meaning another
// renderer already produced output, or Rendered with the page bytes.
type Outcome struct {
	delegated bool
	body      []byte
}

// Delegated reports that output was produced elsewhere and must not be
// overwritten.
func Delegated() Outcome {
	return Outcome{delegated: true}
}

// Rendered wraps the bytes produced by the renderer.
func Rendered(body []byte) Outcome {
	return Outcome{body: body}
}

// IsDelegated reports whether the outcome is Delegated.
func (o Outcome) IsDelegated() bool { return o.delegated }

// Bytes returns the rendered bytes; nil when delegated.
func (o Outcome) Bytes() []byte { return o.body }
