package host

import "context"

// OutcomeKind enumerates view-engine results.
type OutcomeKind int

const (
	// Unhandled means the engine has no view for the request.
	Unhandled OutcomeKind = iota
	// Handled means the engine wrote the response.
	Handled
	// Failed means the engine had a view but rendering it failed.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Handled:
		return "handled"
	case Failed:
		return "failed"
	default:
		return "unhandled"
	}
}

// Outcome is the explicit result of a view engine.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// HandledOutcome reports the engine produced the response.
func HandledOutcome() Outcome { return Outcome{Kind: Handled} }

// UnhandledOutcome reports the engine declined the request.
func UnhandledOutcome() Outcome { return Outcome{Kind: Unhandled} }

// FailedOutcome wraps a rendering failure.
func FailedOutcome(err error) Outcome { return Outcome{Kind: Failed, Err: err} }

// ViewEngine renders a response with a view before the fallback serializer
// runs.
type ViewEngine interface {
	ProcessRequest(ctx context.Context, req *Request, res *Response, body any) Outcome
}

// ViewEngineFunc adapts a function to ViewEngine.
type ViewEngineFunc func(ctx context.Context, req *Request, res *Response, body any) Outcome

// ProcessRequest calls f.
func (f ViewEngineFunc) ProcessRequest(ctx context.Context, req *Request, res *Response, body any) Outcome {
	return f(ctx, req, res, body)
}
