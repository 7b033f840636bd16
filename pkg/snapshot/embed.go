package snapshot

import (
	"embed"
	"io/fs"
)

//go:embed templates/snapshot.html
var embeddedTemplates embed.FS

var defaultTemplate = mustReadTemplate("templates/snapshot.html")

// TemplatesFS exposes the embedded page template for callers that want to
// derive their own layout from it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// DefaultTemplate returns the embedded page template.
func DefaultTemplate() string {
	return defaultTemplate
}

func mustReadTemplate(name string) string {
	data, err := fs.ReadFile(embeddedTemplates, name)
	if err != nil {
		// The embed directive guarantees the file exists.
		panic(err)
	}
	return string(data)
}
