// Package themeincludes turns go-theme selections into markup for the
// snapshot page's include slot: a :root block of CSS variables derived from
// theme tokens and a link to the theme's snapshot stylesheet.
package themeincludes

import (
	"fmt"
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
)

// StylesheetAsset is the theme asset key for the snapshot stylesheet.
const StylesheetAsset = "snapshot.stylesheet"

// Includes is a precomputed include block.
type Includes struct {
	markup string
}

var _ snapshot.Includes = Includes{}

// Includes implements snapshot.Includes.
func (i Includes) Includes() string {
	return i.markup
}

// FromConfig builds includes from a resolved renderer config. CSS variables
// take precedence over tokens, which are exposed as "--<token>".
func FromConfig(cfg *theme.RendererConfig) Includes {
	if cfg == nil {
		return Includes{}
	}
	vars := make(map[string]string, len(cfg.Tokens)+len(cfg.CSSVars))
	for key, value := range cfg.Tokens {
		vars[cssVarName(key)] = value
	}
	for key, value := range cfg.CSSVars {
		vars[cssVarName(key)] = value
	}

	stylesheet := ""
	if cfg.AssetURL != nil {
		stylesheet = cfg.AssetURL(StylesheetAsset)
	}
	return Includes{markup: build(vars, stylesheet)}
}

// FromSelector selects a theme and variant and builds includes from the
// manifest. Variant tokens and assets override the base manifest.
func FromSelector(selector theme.ThemeSelector, name, variant string) (Includes, error) {
	if selector == nil {
		return Includes{}, fmt.Errorf("themeincludes: selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Includes{}, fmt.Errorf("themeincludes: select %s/%s: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return Includes{}, nil
	}
	manifest := selection.Manifest

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	prefix := manifest.Assets.Prefix
	stylesheet := manifest.Assets.Files[StylesheetAsset]

	if v, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		if file := v.Assets.Files[StylesheetAsset]; file != "" {
			stylesheet = file
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars[cssVarName(key)] = value
	}
	if stylesheet != "" && prefix != "" {
		stylesheet = strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(stylesheet, "/")
	}
	return Includes{markup: build(vars, stylesheet)}, nil
}

func cssVarName(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "--") {
		return key
	}
	return "--" + strings.ReplaceAll(key, ".", "-")
}

func build(vars map[string]string, stylesheet string) string {
	var b strings.Builder
	if len(vars) > 0 {
		keys := make([]string, 0, len(vars))
		for key := range vars {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		b.WriteString("<style>\n:root {\n")
		for _, key := range keys {
			b.WriteString("  ")
			b.WriteString(cssEscape(key))
			b.WriteString(": ")
			b.WriteString(cssEscape(vars[key]))
			b.WriteString(";\n")
		}
		b.WriteString("}\n</style>")
	}
	if stylesheet != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<link rel="stylesheet" href="`)
		b.WriteString(html.EscapeString(stylesheet))
		b.WriteString(`">`)
	}
	return b.String()
}

// cssEscape drops characters that could close the declaration or the style
// element.
func cssEscape(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';':
			return -1
		}
		return r
	}, value)
}
