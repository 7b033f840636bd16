package viewengine

import (
	"io"
)

// TemplateRenderer is the template engine contract view engines rely on.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
	// Exists reports whether a named template can be loaded.
	Exists(name string) bool
}
