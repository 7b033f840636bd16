// Package host describes the surface a web host exposes to formatter plugins:
// request and response envelopes, the content-type registry contract, the
// view-engine contract and the error payloads exchanged between them.
//
// The types are deliberately small so plugins such as htmlformat can be
// exercised without a running HTTP server.
package host
