package viewengine

import (
	"context"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
)

// Chain is an ordered list of view engines. The first engine that handles or
// fails a request wins.
type Chain []host.ViewEngine

// Process runs the engines in order and returns the first outcome that is
// not Unhandled. Nil engines are skipped.
func (c Chain) Process(ctx context.Context, req *host.Request, res *host.Response, body any) host.Outcome {
	for _, engine := range c {
		if engine == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return host.FailedOutcome(err)
		}
		outcome := engine.ProcessRequest(ctx, req, res, body)
		if outcome.Kind != host.Unhandled {
			return outcome
		}
	}
	return host.UnhandledOutcome()
}
