// Package openapi resolves request method and path pairs to the operations
// declared in an OpenAPI 3 document, so snapshot pages can show the
// operation id and its documentation.
package openapi
