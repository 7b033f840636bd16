package host

import (
	"bytes"
	"net/http"
)

// Response buffers the serialized body so the host can set headers and the
// status code after a serializer or view engine has produced output.
type Response struct {
	StatusCode int
	Header     http.Header

	body    bytes.Buffer
	written bool
}

// NewResponse returns a 200 response with an empty header set.
func NewResponse() *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
	}
}

// Write appends p to the buffered body.
func (r *Response) Write(p []byte) (int, error) {
	r.written = true
	return r.body.Write(p)
}

// Bytes returns the buffered body.
func (r *Response) Bytes() []byte {
	return r.body.Bytes()
}

// Written reports whether anything wrote to the response, including empty
// writes.
func (r *Response) Written() bool {
	return r.written
}

// Reset drops the buffered body. Status and headers are kept.
func (r *Response) Reset() {
	r.body.Reset()
	r.written = false
}
