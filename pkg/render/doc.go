// Package render holds the content-type registry used by the host to look up
// the serializer for a negotiated response type.
package render
