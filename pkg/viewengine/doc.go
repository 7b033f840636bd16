// Package viewengine provides the ordered chain of view engines tried before
// the snapshot fallback, plus a pongo2-backed engine that renders a template
// named after the request's operation.
package viewengine
