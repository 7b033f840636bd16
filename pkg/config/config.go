// Package config loads snapshot server and CLI settings from a JSON or YAML
// file with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlsnapshot/pkg/host"
	"github.com/goliatone/go-htmlsnapshot/pkg/snapshot"
	"github.com/goliatone/go-htmlsnapshot/pkg/themeincludes"
)

// Settings is the full set of tunables. Precedence, lowest first: defaults,
// file, environment.
type Settings struct {
	Addr               string `json:"addr" yaml:"addr" env:"HTMLSNAPSHOT_ADDR"`
	TitleFormat        string `json:"title_format" yaml:"title_format" env:"HTMLSNAPSHOT_TITLE_FORMAT"`
	HeaderFormat       string `json:"header_format" yaml:"header_format" env:"HTMLSNAPSHOT_HEADER_FORMAT"`
	Humanize           bool   `json:"humanize" yaml:"humanize" env:"HTMLSNAPSHOT_HUMANIZE"`
	TimestampLayout    string `json:"timestamp_layout" yaml:"timestamp_layout" env:"HTMLSNAPSHOT_TIMESTAMP_LAYOUT"`
	CreatedStatus      int    `json:"created_status" yaml:"created_status" env:"HTMLSNAPSHOT_CREATED_STATUS"`
	DefaultContentType string `json:"default_content_type" yaml:"default_content_type" env:"HTMLSNAPSHOT_DEFAULT_CONTENT_TYPE"`
	TemplatePath       string `json:"template_path" yaml:"template_path" env:"HTMLSNAPSHOT_TEMPLATE_PATH"`
	ViewsDir           string `json:"views_dir" yaml:"views_dir" env:"HTMLSNAPSHOT_VIEWS_DIR"`
	OpenAPIPath        string `json:"openapi_path" yaml:"openapi_path" env:"HTMLSNAPSHOT_OPENAPI_PATH"`
	ThemeName          string `json:"theme" yaml:"theme" env:"HTMLSNAPSHOT_THEME"`
	ThemeVariant       string `json:"theme_variant" yaml:"theme_variant" env:"HTMLSNAPSHOT_THEME_VARIANT"`
	ThemeManifestPath  string `json:"theme_manifest" yaml:"theme_manifest" env:"HTMLSNAPSHOT_THEME_MANIFEST"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	def := snapshot.DefaultConfig()
	return Settings{
		Addr:               ":8080",
		TitleFormat:        def.TitleFormat,
		HeaderFormat:       def.HeaderFormat,
		Humanize:           def.Humanize,
		TimestampLayout:    def.TimestampLayout,
		CreatedStatus:      http.StatusCreated,
		DefaultContentType: host.MimeHTML,
	}
}

// Load applies defaults, then the optional file at path, then environment
// overrides. An empty path skips the file.
func Load(path string) (Settings, error) {
	settings := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(data, path, &settings); err != nil {
			return Settings{}, err
		}
	}
	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings, settings.Validate()
}

// LoadFS is Load for files in an fs.FS.
func LoadFS(fsys fs.FS, path string) (Settings, error) {
	settings := Defaults()
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(data, path, &settings); err != nil {
		return Settings{}, err
	}
	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings, settings.Validate()
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func decode(data []byte, source string, settings *Settings) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", source)
	}
	if err := json.Unmarshal(data, settings); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, settings); err == nil {
		return nil
	}
	return fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

// Validate checks the formats and status code.
func (s Settings) Validate() error {
	for name, format := range map[string]string{"title_format": s.TitleFormat, "header_format": s.HeaderFormat} {
		if strings.Contains(format, "%") && !strings.Contains(format, "%[") {
			return fmt.Errorf("config: %s must use positional verbs %%[1]s and %%[2]s", name)
		}
	}
	if s.CreatedStatus < 100 || s.CreatedStatus > 599 {
		return fmt.Errorf("config: created_status %d is not an HTTP status", s.CreatedStatus)
	}
	return nil
}

// Snapshot returns the page configuration.
func (s Settings) Snapshot() snapshot.Config {
	return snapshot.Config{
		TitleFormat:     s.TitleFormat,
		HeaderFormat:    s.HeaderFormat,
		Humanize:        s.Humanize,
		TimestampLayout: s.TimestampLayout,
	}
}

// RendererOptions reads the page template and theme manifest named by the
// settings. Unset paths contribute no option.
func (s Settings) RendererOptions() ([]snapshot.Option, error) {
	var options []snapshot.Option
	if s.TemplatePath != "" {
		tpl, err := os.ReadFile(s.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("config: read template: %w", err)
		}
		options = append(options, snapshot.WithTemplate(string(tpl)))
	}
	if s.ThemeManifestPath != "" {
		manifest, err := themeincludes.LoadManifest(s.ThemeManifestPath)
		if err != nil {
			return nil, err
		}
		includes, err := themeincludes.FromSelector(themeincludes.StaticSelector{Manifest: manifest}, s.ThemeName, s.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options = append(options, snapshot.WithIncludes(includes))
	}
	return options, nil
}

// NewRenderer builds a renderer from the page configuration and
// RendererOptions. Extra options are applied last.
func (s Settings) NewRenderer(extra ...snapshot.Option) (*snapshot.Renderer, error) {
	options, err := s.RendererOptions()
	if err != nil {
		return nil, err
	}
	return snapshot.New(s.Snapshot(), append(options, extra...)...), nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
