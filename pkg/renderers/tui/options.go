package tui

import "io"

// OutputFormat controls what Render returns once the session finishes.
type OutputFormat string

const (
	// OutputFormatBlob returns the generated blob text.
	OutputFormatBlob OutputFormat = "blob"
	// OutputFormatJSON returns the final item list as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText returns the text renderer's table and blob.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects what Render returns.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithOutput sets the writer the default survey driver prints messages to.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
