package window

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/render"
)

// Name is the registry key of the full-screen frontend.
const Name = "window"

const defaultRefresh = 100 * time.Millisecond

// Frontend runs the bubbletea program.
type Frontend struct {
	refresh   time.Duration
	altScreen bool
	input     io.Reader
	output    io.Writer
	logger    zerolog.Logger
}

// Option configures the frontend.
type Option func(*Frontend)

// WithRefresh sets how often the log panel polls for new lines.
func WithRefresh(d time.Duration) Option {
	return func(f *Frontend) {
		if d > 0 {
			f.refresh = d
		}
	}
}

// WithInlineMode renders in the normal screen buffer instead of the
// alternate screen.
func WithInlineMode() Option {
	return func(f *Frontend) {
		f.altScreen = false
	}
}

// WithIO replaces the terminal streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(f *Frontend) {
		f.input = in
		f.output = out
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Frontend) {
		f.logger = logger
	}
}

// New constructs the frontend.
func New(opts ...Option) *Frontend {
	f := &Frontend{
		refresh:   defaultRefresh,
		altScreen: true,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Name reports the frontend identifier.
func (f *Frontend) Name() string {
	return Name
}

// Run blocks until the user quits or ctx is cancelled.
func (f *Frontend) Run(ctx context.Context, session *render.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if f.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if f.input != nil {
		programOpts = append(programOpts, tea.WithInput(f.input))
	}
	if f.output != nil {
		programOpts = append(programOpts, tea.WithOutput(f.output))
	}

	program := tea.NewProgram(newModel(ctx, session, f.refresh), programOpts...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		f.logger.Error().Err(err).Msg("window frontend stopped")
	}
	return err
}
