package host

import (
	"context"
	"slices"
)

// SerializeFunc writes body to res in the format registered for a content
// type.
type SerializeFunc func(ctx context.Context, req *Request, body any, res *Response) error

// ContentTypes is the registry plugins use to claim content types.
type ContentTypes interface {
	Register(contentType string, serialize SerializeFunc) error
}

// Config holds host-wide settings plugins may adjust while registering.
type Config struct {
	DefaultContentType      string
	IgnoreFormatsInMetadata []string
}

// IgnoreFormat adds format to IgnoreFormatsInMetadata once.
func (c *Config) IgnoreFormat(format string) {
	if format == "" || slices.Contains(c.IgnoreFormatsInMetadata, format) {
		return
	}
	c.IgnoreFormatsInMetadata = append(c.IgnoreFormatsInMetadata, format)
}

// AppHost is the host surface exposed to plugins during registration.
type AppHost interface {
	ContentTypes() ContentTypes
	Config() *Config
	ViewEngines() []ViewEngine
}

// Plugin is registered once against an AppHost at startup.
type Plugin interface {
	Register(appHost AppHost) error
}
