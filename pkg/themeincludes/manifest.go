package themeincludes

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name     string                 `yaml:"name"`
	Version  string                 `yaml:"version"`
	Tokens   map[string]string      `yaml:"tokens"`
	Assets   assetsFile             `yaml:"assets"`
	Variants map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens map[string]string `yaml:"tokens"`
	Assets assetsFile        `yaml:"assets"`
}

// LoadManifest reads a theme manifest from a YAML (or JSON) file.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themeincludes: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest data. JSON is accepted as a YAML subset.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("themeincludes: decode manifest: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("themeincludes: manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:    raw.Name,
		Version: raw.Version,
		Tokens:  raw.Tokens,
		Assets:  theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, v := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens: v.Tokens,
				Assets: theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// StaticSelector selects from a single manifest. An empty variant selects
// the base theme.
type StaticSelector struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = StaticSelector{}

// Select implements theme.ThemeSelector.
func (s StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.Manifest == nil {
		return nil, fmt.Errorf("themeincludes: no manifest loaded")
	}
	if name != "" && name != s.Manifest.Name {
		return nil, fmt.Errorf("themeincludes: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := s.Manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("themeincludes: unknown variant %q for theme %q", variant, s.Manifest.Name)
		}
	}
	return &theme.Selection{Theme: s.Manifest.Name, Variant: variant, Manifest: s.Manifest}, nil
}
