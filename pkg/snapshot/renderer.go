package snapshot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// Template placeholders.
const (
	PlaceholderDto         = "${Dto}"
	PlaceholderTitle       = "${Title}"
	PlaceholderMvcIncludes = "${MvcIncludes}"
	PlaceholderHeader      = "${Header}"
	PlaceholderServiceURL  = "${ServiceUrl}"
	PlaceholderHumanize    = "${Humanize}"
)

// Includes produces opaque markup for the ${MvcIncludes} slot, such as theme
// stylesheets or profiler scripts.
type Includes interface {
	Includes() string
}

// IncludesFunc adapts a function to Includes.
type IncludesFunc func() string

// Includes calls f.
func (f IncludesFunc) Includes() string { return f() }

// Option customises a Renderer.
type Option func(*Renderer)

// WithTemplate replaces the embedded page template. Empty templates are
// ignored.
func WithTemplate(tpl string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(tpl) != "" {
			r.template = tpl
		}
	}
}

// WithSerializer overrides the JSON serializer.
func WithSerializer(s Serializer) Option {
	return func(r *Renderer) {
		if s != nil {
			r.serializer = s
		}
	}
}

// WithIncludes sets the provider for the ${MvcIncludes} slot.
func WithIncludes(inc Includes) Option {
	return func(r *Renderer) {
		r.includes = inc
	}
}

// WithClock overrides the time source used for titles and headers.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// Renderer produces snapshot pages. It is immutable after New and safe for
// concurrent use.
type Renderer struct {
	cfg        Config
	template   string
	serializer Serializer
	includes   Includes
	now        func() time.Time
}

// New constructs a Renderer. Empty config fields take their defaults.
func New(cfg Config, options ...Option) *Renderer {
	r := &Renderer{
		cfg:        cfg.withDefaults(),
		template:   defaultTemplate,
		serializer: JSONSerializer{},
		now:        time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render produces the page for payload. Pre-rendered payloads are returned
// byte-for-byte. Serialization errors are returned to the caller.
func (r *Renderer) Render(payload Payload, req RenderRequest) (Outcome, error) {
	if payload.IsPreRendered() {
		return Rendered([]byte(payload.HTML())), nil
	}

	serialized, err := r.serializer.Serialize(payload.Value())
	if err != nil {
		return Outcome{}, fmt.Errorf("snapshot: serialize %s: %w", req.OperationName, err)
	}
	if serialized == "" {
		serialized = "null"
	}

	now := r.now().UTC().Format(r.cfg.TimestampLayout)
	header := fmt.Sprintf(r.cfg.HeaderFormat, html.EscapeString(req.OperationName), now)
	if req.OperationDoc != "" {
		header += `<div class="operation-doc">` + req.OperationDoc + `</div>`
	}

	includes := ""
	if r.includes != nil {
		includes = r.includes.Includes()
	}

	// A single pass keeps placeholder text inside the payload from being
	// substituted.
	page := strings.NewReplacer(
		PlaceholderDto, EscapeHTML(serialized),
		PlaceholderTitle, html.EscapeString(fmt.Sprintf(r.cfg.TitleFormat, req.OperationName, now)),
		PlaceholderMvcIncludes, includes,
		PlaceholderHeader, header,
		PlaceholderServiceURL, html.EscapeString(ServiceURL(req.AbsoluteURL)),
		PlaceholderHumanize, strconv.FormatBool(r.cfg.Humanize),
	).Replace(r.template)

	return Rendered([]byte(page)), nil
}
