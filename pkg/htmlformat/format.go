package htmlformat

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
	"github.com/goliatone/go-htmlsnapshot/pkg/viewengine"
)

// OperationInfo describes the operation behind a request.
type OperationInfo struct {
	Name string
	// Doc is sanitized HTML rendered below the page header.
	Doc string
}

// OperationResolver looks up operation metadata for a request that did not
// name its operation.
type OperationResolver interface {
	ResolveOperation(method, path string) (OperationInfo, bool)
}

// Option customises a Format.
type Option func(*Format)

// WithConfig sets the snapshot page configuration.
func WithConfig(cfg snapshot.Config) Option {
	return func(f *Format) {
		f.cfg = cfg
	}
}

// WithRenderer injects a pre-built snapshot renderer. It takes precedence over
// WithConfig and WithIncludes.
func WithRenderer(renderer *snapshot.Renderer) Option {
	return func(f *Format) {
		f.renderer = renderer
	}
}

// WithIncludes sets the provider for the page's include slot.
func WithIncludes(inc snapshot.Includes) Option {
	return func(f *Format) {
		f.includes = inc
	}
}

// WithCreatedStatus overrides the status that still renders when a Location
// header is present. Defaults to 201.
func WithCreatedStatus(status int) Option {
	return func(f *Format) {
		if status > 0 {
			f.createdStatus = status
		}
	}
}

// WithOperationResolver sets the resolver used for unnamed operations.
func WithOperationResolver(resolver OperationResolver) Option {
	return func(f *Format) {
		f.resolver = resolver
	}
}

// WithLogger overrides the logger used to report error fallbacks.
func WithLogger(logger *log.Logger) Option {
	return func(f *Format) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Format is the HTML snapshot plugin.
type Format struct {
	cfg           snapshot.Config
	includes      snapshot.Includes
	renderer      *snapshot.Renderer
	resolver      OperationResolver
	createdStatus int
	logger        *log.Logger

	mu      sync.RWMutex
	appHost host.AppHost
}

var _ host.Plugin = (*Format)(nil)

// New constructs the plugin.
func New(options ...Option) *Format {
	f := &Format{
		cfg:           snapshot.DefaultConfig(),
		createdStatus: http.StatusCreated,
		logger:        log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.renderer == nil {
		f.renderer = snapshot.New(f.cfg, snapshot.WithIncludes(f.includes))
	}
	return f
}

// Register claims text/html and text/jsonreport on the host.
func (f *Format) Register(appHost host.AppHost) error {
	if appHost == nil {
		return fmt.Errorf("htmlformat: app host is required")
	}

	f.mu.Lock()
	f.appHost = appHost
	f.mu.Unlock()

	for _, mime := range []string{host.MimeHTML, host.MimeJSONReport} {
		if err := appHost.ContentTypes().Register(mime, f.SerializeToStream); err != nil {
			return fmt.Errorf("htmlformat: register %s: %w", mime, err)
		}
	}

	cfg := appHost.Config()
	cfg.DefaultContentType = host.MimeHTML
	cfg.IgnoreFormat(host.ContentFormat(host.MimeHTML))
	cfg.IgnoreFormat(host.ContentFormat(host.MimeJSONReport))
	return nil
}

// SerializeToStream writes the snapshot page for body into res. It writes
// nothing for redirects, for responses handled by a view engine and for
// content types other than html and jsonreport.
func (f *Format) SerializeToStream(ctx context.Context, req *host.Request, body any, res *host.Response) error {
	outcome, err := f.Render(ctx, req, body, res)
	if err != nil {
		return err
	}
	if outcome.IsDelegated() {
		return nil
	}
	_, err = res.Write(outcome.Bytes())
	return err
}

// Render runs the plugin flow without writing the page. It returns Delegated
// when the response is a redirect, when a view engine produced the output or
// when the content type is not one the plugin renders.
func (f *Format) Render(ctx context.Context, req *host.Request, body any, res *host.Response) (snapshot.Outcome, error) {
	if result, ok := httpResult(req); ok && snapshot.SkipRedirect(result.StatusCode, result.Header, f.createdStatus) {
		return snapshot.Delegated(), nil
	}

	if res.StatusCode >= http.StatusBadRequest {
		req.SetItem(host.ItemErrorStatus, host.ResponseStatusOf(body))
	}

	f.nameOperation(req, body)
	outcome := viewengine.Chain(f.viewEngines()).Process(ctx, req, res, body)
	switch outcome.Kind {
	case host.Handled:
		return snapshot.Delegated(), nil
	case host.Failed:
		if res.StatusCode < http.StatusBadRequest {
			return snapshot.Outcome{}, outcome.Err
		}
		// Error views cannot render errors, so the generated payload is
		// written by the snapshot page instead.
		f.logger.Printf("htmlformat: view engine failed for %s (status %d), rendering error payload: %v",
			req.OperationName, res.StatusCode, outcome.Err)
		body = host.CreateErrorResponse(req.Dto, outcome.Err)
	}

	format := formatOf(req.ResponseContentType)
	if format == snapshot.FormatOther {
		return snapshot.Delegated(), nil
	}

	renderReq := f.renderRequest(req, body, res.StatusCode, format)
	return f.renderer.Render(snapshot.PayloadOf(unwrapResult(body)), renderReq)
}

func (f *Format) renderRequest(req *host.Request, body any, status int, format snapshot.Format) snapshot.RenderRequest {
	out := snapshot.RenderRequest{
		AbsoluteURL:   req.AbsoluteURI(),
		OperationName: req.OperationName,
		Format:        format,
		StatusCode:    status,
	}

	if f.resolver != nil && req.URL != nil {
		if info, ok := f.resolver.ResolveOperation(req.Method, req.URL.Path); ok {
			if out.OperationName == "" {
				out.OperationName = info.Name
			}
			out.OperationDoc = info.Doc
		}
	}
	if out.OperationName == "" {
		out.OperationName = host.OperationNameOf(unwrapResult(body))
	}
	return out
}

// nameOperation fills an empty operation name from the resolver, falling back
// to the response type name, so view engines can find the operation's view.
func (f *Format) nameOperation(req *host.Request, body any) {
	if req.OperationName != "" {
		return
	}
	if f.resolver != nil && req.URL != nil {
		if info, ok := f.resolver.ResolveOperation(req.Method, req.URL.Path); ok && info.Name != "" {
			req.OperationName = info.Name
			return
		}
	}
	req.OperationName = host.OperationNameOf(unwrapResult(body))
}

func (f *Format) viewEngines() []host.ViewEngine {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.appHost == nil {
		return nil
	}
	return f.appHost.ViewEngines()
}

func httpResult(req *host.Request) (*host.Result, bool) {
	item, ok := req.Item(host.ItemHTTPResult)
	if !ok {
		return nil, false
	}
	result, ok := item.(*host.Result)
	return result, ok && result != nil
}

func unwrapResult(body any) any {
	if result, ok := body.(*host.Result); ok && result != nil {
		return result.Response
	}
	return body
}

func formatOf(contentType string) snapshot.Format {
	switch host.BaseMime(contentType) {
	case host.MimeHTML:
		return snapshot.FormatHTML
	case host.MimeJSONReport:
		return snapshot.FormatJSONReport
	default:
		return snapshot.FormatOther
	}
}
