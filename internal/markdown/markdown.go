// Package markdown renders operation descriptions written in Markdown into
// sanitized HTML fragments.
package markdown

import (
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Render converts md to HTML and strips anything outside the UGC policy.
// Blank input renders as an empty string.
func Render(md string) string {
	trimmed := strings.TrimSpace(md)
	if trimmed == "" {
		return ""
	}

	// Parsers keep state between calls and must not be reused.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	out := markdown.ToHTML([]byte(trimmed), p, renderer)

	return strings.TrimSpace(sanitizer().Sanitize(string(out)))
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}
