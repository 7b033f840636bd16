// Package htmlsnapshot serves API responses as browsable HTML snapshot pages.
//
// The root package provides a small host (App) and convenience constructors;
// the snapshot renderer lives in pkg/snapshot and the host plugin in
// pkg/htmlformat.
package htmlsnapshot

import (
	"github.com/goliatone/go-htmlsnapshot/pkg/htmlformat"
	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
)

// Config aliases snapshot.Config for callers configuring page metadata.
type Config = snapshot.Config

// RenderRequest aliases snapshot.RenderRequest.
type RenderRequest = snapshot.RenderRequest

// DefaultConfig returns the default page configuration.
func DefaultConfig() Config {
	return snapshot.DefaultConfig()
}

// NewFormat exposes the plugin constructor from the top-level module.
func NewFormat(options ...htmlformat.Option) *htmlformat.Format {
	return htmlformat.New(options...)
}

// NewApp builds an App with the HTML format plugin registered, making
// text/html the default content type.
func NewApp(format *htmlformat.Format, options ...Option) (*App, error) {
	if format == nil {
		format = htmlformat.New()
	}
	app := New(options...)
	if err := app.Plugins(format); err != nil {
		return nil, err
	}
	return app, nil
}

// RenderHTML renders value as a snapshot page with cfg. Strings are passed
// through as HTML.
func RenderHTML(value any, req RenderRequest, cfg Config) ([]byte, error) {
	out, err := snapshot.New(cfg).Render(snapshot.PayloadOf(value), req)
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
