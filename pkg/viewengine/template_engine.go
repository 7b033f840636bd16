package viewengine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
	"github.com/goliatone/go-htmlsnapshot/pkg/viewengine/gotemplate"
)

// TemplateOption configures a TemplateEngine.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	templates fs.FS
	baseDir   string
	extension string
	renderer  TemplateRenderer
	mimes     []string
}

// WithTemplatesFS loads views from an fs.FS.
func WithTemplatesFS(files fs.FS) TemplateOption {
	return func(cfg *templateConfig) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads views from a directory on disk.
func WithTemplatesDir(dir string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension overrides the view file extension (default ".html").
func WithExtension(ext string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.extension = ext
	}
}

// WithTemplateRenderer injects a custom TemplateRenderer instead of the
// pongo2 adapter.
func WithTemplateRenderer(renderer TemplateRenderer) TemplateOption {
	return func(cfg *templateConfig) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithContentTypes restricts the engine to the listed response content types.
// By default only text/html requests are handled.
func WithContentTypes(mimes ...string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.mimes = append(cfg.mimes[:0], mimes...)
	}
}

// TemplateEngine renders "<OperationName><ext>" views. Requests without a
// matching view are left to the next engine.
type TemplateEngine struct {
	templates TemplateRenderer
	mimes     []string
}

var (
	_ host.ViewEngine  = (*TemplateEngine)(nil)
	_ TemplateRenderer = (*gotemplate.Engine)(nil)
)

// NewTemplateEngine constructs a TemplateEngine.
func NewTemplateEngine(options ...TemplateOption) (*TemplateEngine, error) {
	cfg := templateConfig{
		extension: ".html",
		mimes:     []string{host.MimeHTML},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.renderer
	if renderer == nil {
		if cfg.templates == nil && cfg.baseDir == "" {
			return nil, errors.New("viewengine: templates fs or directory required")
		}
		var engineOpts []gotemplate.Option
		if cfg.templates != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templates))
		}
		if cfg.baseDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.baseDir))
		}
		engineOpts = append(engineOpts, gotemplate.WithExtension(cfg.extension))

		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("viewengine: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &TemplateEngine{
		templates: renderer,
		mimes:     cfg.mimes,
	}, nil
}

// ProcessRequest renders the operation's view into res.
func (e *TemplateEngine) ProcessRequest(_ context.Context, req *host.Request, res *host.Response, body any) host.Outcome {
	if req == nil || req.OperationName == "" || !e.accepts(req.ResponseContentType) {
		return host.UnhandledOutcome()
	}
	if !e.templates.Exists(req.OperationName) {
		return host.UnhandledOutcome()
	}

	errorStatus, _ := req.Item(host.ItemErrorStatus)
	data := map[string]any{
		host.ModelKey:  body,
		"operation":    req.OperationName,
		"status":       res.StatusCode,
		"error_status": errorStatus,
		"url":          req.AbsoluteURI(),
	}

	if _, err := e.templates.RenderTemplate(req.OperationName, data, res); err != nil {
		return host.FailedOutcome(fmt.Errorf("viewengine: render %q: %w", req.OperationName, err))
	}
	return host.HandledOutcome()
}

func (e *TemplateEngine) accepts(contentType string) bool {
	base := host.BaseMime(contentType)
	for _, mime := range e.mimes {
		if host.BaseMime(mime) == base {
			return true
		}
	}
	return false
}
