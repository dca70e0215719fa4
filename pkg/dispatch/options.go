package dispatch

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the diagnostics logger. Defaults to zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock overrides the time source used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithPassthrough mirrors every byte written to Run.Out to w as well, the way
// a terminal would still show it.
func WithPassthrough(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.passthrough = w
	}
}

// WithScheduler shares a scheduler between dispatchers.
func WithScheduler(s *Scheduler) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.scheduler = s
		}
	}
}

// WithCancelOnRerun makes each run cancel the jobs scheduled by the previous
// run before the callback is invoked.
func WithCancelOnRerun() Option {
	return func(d *Dispatcher) {
		d.cancelOnRerun = true
	}
}
