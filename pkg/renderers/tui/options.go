package tui

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/form"
)

// Theme holds the prefixes printed in front of echoed log lines and menu
// entries.
type Theme struct {
	LogPrefix   string
	RunLabel    string
	QuitLabel   string
	BrowseLabel string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{
	LogPrefix:   "│ ",
	RunLabel:    "▶ ",
	QuitLabel:   "Quit",
	BrowseLabel: "Browse…",
}

// Option configures the frontend.
type Option func(*Frontend)

// WithPromptDriver overrides the survey-backed prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Frontend) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithPicker overrides the directory walker used for path controls.
func WithPicker(picker form.Picker) Option {
	return func(f *Frontend) {
		if picker != nil {
			f.picker = picker
		}
	}
}

// WithOutput sets where log lines are echoed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(f *Frontend) {
		if w != nil {
			f.out = w
		}
	}
}

// WithTheme replaces DefaultTheme.
func WithTheme(theme Theme) Option {
	return func(f *Frontend) {
		f.theme = theme
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Frontend) {
		f.logger = logger
	}
}

// WithoutEcho stops log lines from being printed as they are appended.
func WithoutEcho() Option {
	return func(f *Frontend) {
		f.echo = false
	}
}
