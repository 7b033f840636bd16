package snapshot

import "time"

const (
	// DefaultTitleFormat receives the operation name and timestamp.
	DefaultTitleFormat = "%[1]s Snapshot of %[2]s"
	// DefaultHeaderFormat receives the HTML-escaped operation name and timestamp.
	DefaultHeaderFormat = `Snapshot of <i>%[1]s</i> generated by <a href="https://github.com/goliatone/go-htmlsnapshot">go-htmlsnapshot</a> on <b>%[2]s</b>`
	// DefaultTimestampLayout formats the UTC render time.
	DefaultTimestampLayout = time.RFC1123
)

// Config controls the display metadata of rendered pages. It is copied into
// the Renderer at construction and never mutated afterwards.
type Config struct {
	// TitleFormat is a fmt format with two positional slots: %[1]s for the
	// operation name and %[2]s for the timestamp.
	TitleFormat string
	// HeaderFormat uses the same slots as TitleFormat and may contain markup.
	HeaderFormat string
	// Humanize asks the page script to turn field names into labels.
	Humanize bool
	// TimestampLayout is the time layout used for the %[2]s slot.
	TimestampLayout string
}

// DefaultConfig returns the process defaults.
func DefaultConfig() Config {
	return Config{
		TitleFormat:     DefaultTitleFormat,
		HeaderFormat:    DefaultHeaderFormat,
		Humanize:        true,
		TimestampLayout: DefaultTimestampLayout,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TitleFormat == "" {
		c.TitleFormat = def.TitleFormat
	}
	if c.HeaderFormat == "" {
		c.HeaderFormat = def.HeaderFormat
	}
	if c.TimestampLayout == "" {
		c.TimestampLayout = def.TimestampLayout
	}
	return c
}
