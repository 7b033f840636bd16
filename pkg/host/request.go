package host

import (
	"net/http"
	"net/url"
)

// Well-known item keys shared between the host and its plugins.
const (
	// ItemHTTPResult holds the *Result returned by a service, if any.
	ItemHTTPResult = "HttpResult"
	// ItemErrorStatus holds the *ResponseStatus captured for error responses.
	ItemErrorStatus = "__errorStatus"
	// ModelKey is the template context key view engines use for the response.
	ModelKey = "Model"
)

// Request is the per-call request envelope handed to serializers and view
// engines.
type Request struct {
	Method              string
	URL                 *url.URL
	OperationName       string
	ResponseContentType string
	// Dto is the decoded request payload, used when building error responses.
	Dto   any
	Items map[string]any
	// Original is the incoming HTTP request, when there is one.
	Original *http.Request
}

// NewRequest builds a Request from an incoming HTTP request. The URL is made
// absolute using the Host header and the TLS/X-Forwarded-Proto state.
func NewRequest(r *http.Request, operationName string) *Request {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			u.Scheme = proto
		}
	}
	return &Request{
		Method:        r.Method,
		URL:           &u,
		OperationName: operationName,
		Items:         make(map[string]any),
		Original:      r,
	}
}

// AbsoluteURI returns the absolute request URL as a string.
func (r *Request) AbsoluteURI() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.String()
}

// Item returns the value stored under key.
func (r *Request) Item(key string) (any, bool) {
	if r == nil || r.Items == nil {
		return nil, false
	}
	v, ok := r.Items[key]
	return v, ok
}

// SetItem stores value under key, allocating the item bag on first use.
func (r *Request) SetItem(key string, value any) {
	if r.Items == nil {
		r.Items = make(map[string]any)
	}
	r.Items[key] = value
}

// Result is an explicit HTTP result a service can return to control the
// status code and headers alongside the response payload.
type Result struct {
	StatusCode int
	Header     http.Header
	Response   any
}

// NewResult wraps a payload with a status code.
func NewResult(response any, status int) *Result {
	return &Result{
		StatusCode: status,
		Header:     make(http.Header),
		Response:   response,
	}
}

// Redirect returns a result carrying a Location header.
func Redirect(location string, status int) *Result {
	res := NewResult(nil, status)
	res.Header.Set("Location", location)
	return res
}

// HasLocation reports whether the result carries a Location header.
func (r *Result) HasLocation() bool {
	return r != nil && r.Header != nil && r.Header.Get("Location") != ""
}
