package htmlsnapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
	"github.com/goliatone/go-htmlsnapshot/pkg/render"
	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
)

// ServiceFunc handles a request and returns the response payload. Returning a
// *host.Result controls the status code and headers.
type ServiceFunc func(ctx context.Context, req *host.Request) (any, error)

// Option configures an App.
type Option func(*App)

// WithRegistry replaces the content-type registry.
func WithRegistry(registry *render.Registry) Option {
	return func(a *App) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// WithDefaultContentType sets the content type used when the request does not
// ask for one. Plugins may change it while registering.
func WithDefaultContentType(mime string) Option {
	return func(a *App) {
		if mime != "" {
			a.config.DefaultContentType = mime
		}
	}
}

// WithLogger overrides the logger used for write failures.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// App is a minimal host: it routes requests to services, negotiates the
// response content type and runs the registered serializer.
type App struct {
	mux      *http.ServeMux
	registry *render.Registry
	config   *host.Config
	logger   *log.Logger

	mu      sync.RWMutex
	engines []host.ViewEngine
}

var (
	_ host.AppHost = (*App)(nil)
	_ http.Handler = (*App)(nil)
)

// New constructs an App with a JSON serializer registered for
// application/json.
func New(options ...Option) *App {
	a := &App{
		mux:      http.NewServeMux(),
		registry: render.NewRegistry(),
		config:   &host.Config{DefaultContentType: host.MimeJSON},
		logger:   log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if !a.registry.Has(host.MimeJSON) {
		a.registry.MustRegister(host.MimeJSON, serializeJSON)
	}
	return a
}

// ContentTypes implements host.AppHost.
func (a *App) ContentTypes() host.ContentTypes { return a.registry }

// Config implements host.AppHost.
func (a *App) Config() *host.Config { return a.config }

// ViewEngines implements host.AppHost.
func (a *App) ViewEngines() []host.ViewEngine {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append([]host.ViewEngine(nil), a.engines...)
}

// AddViewEngine appends an engine to the view-engine chain.
func (a *App) AddViewEngine(engine host.ViewEngine) {
	if engine == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.engines = append(a.engines, engine)
}

// Plugins registers plugins in order. Call before serving requests.
func (a *App) Plugins(plugins ...host.Plugin) error {
	for _, plugin := range plugins {
		if plugin == nil {
			continue
		}
		if err := plugin.Register(a); err != nil {
			return fmt.Errorf("htmlsnapshot: register plugin %T: %w", plugin, err)
		}
	}
	return nil
}

// Handle routes pattern to a service. operationName may be empty, in which
// case plugins derive it.
func (a *App) Handle(pattern, operationName string, service ServiceFunc) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.serve(w, r, operationName, service)
	})
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *App) serve(w http.ResponseWriter, r *http.Request, operationName string, service ServiceFunc) {
	ctx := r.Context()
	req := host.NewRequest(r, operationName)
	req.ResponseContentType = a.negotiate(r)
	res := host.NewResponse()

	body, err := service(ctx, req)
	if err != nil {
		res.StatusCode = host.StatusOf(err)
		body = host.CreateErrorResponse(req.Dto, err)
	}
	if result, ok := body.(*host.Result); ok && result != nil {
		req.SetItem(host.ItemHTTPResult, result)
		if result.StatusCode > 0 {
			res.StatusCode = result.StatusCode
		}
		for key, values := range result.Header {
			res.Header[key] = append([]string(nil), values...)
		}
		body = result.Response
	}

	serialize, err := a.registry.Get(req.ResponseContentType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotAcceptable)
		return
	}
	if err := serialize(ctx, req, body, res); err != nil {
		a.logger.Printf("htmlsnapshot: serialize %s as %s: %v", req.OperationName, req.ResponseContentType, err)
		if errors.Is(err, context.Canceled) {
			return
		}
		if res.StatusCode < http.StatusBadRequest {
			writeStatus(w, http.StatusInternalServerError)
			return
		}
		// Error responses get one more attempt with the generated payload.
		res.Reset()
		if err := serialize(ctx, req, host.CreateErrorResponse(req.Dto, err), res); err != nil {
			a.logger.Printf("htmlsnapshot: serialize error payload for %s: %v", req.OperationName, err)
			writeStatus(w, http.StatusInternalServerError)
			return
		}
	}

	for key, values := range res.Header {
		w.Header()[key] = values
	}
	if w.Header().Get("Content-Type") == "" && res.Written() {
		w.Header().Set("Content-Type", req.ResponseContentType+"; charset=utf-8")
	}
	w.WriteHeader(res.StatusCode)
	if _, err := w.Write(res.Bytes()); err != nil {
		a.logger.Printf("htmlsnapshot: write response for %s: %v", req.OperationName, err)
	}
}

func writeStatus(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// negotiate picks the response content type: ?format=, then Accept, then the
// configured default.
func (a *App) negotiate(r *http.Request) string {
	if format := r.URL.Query().Get("format"); format != "" {
		if mime, ok := host.MimeForFormat(format); ok && a.registry.Has(mime) {
			return mime
		}
	}
	if mime, ok := a.registry.Negotiate(r.Header.Get("Accept")); ok {
		return mime
	}
	return host.BaseMime(a.config.DefaultContentType)
}

func serializeJSON(_ context.Context, _ *host.Request, body any, res *host.Response) error {
	out, err := snapshot.JSONSerializer{}.Serialize(body)
	if err != nil {
		return fmt.Errorf("htmlsnapshot: encode json: %w", err)
	}
	_, err = res.Write([]byte(out))
	return err
}
