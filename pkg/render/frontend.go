package render

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/console"
	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/form"
)

// Frontend displays a session's form and log until the user quits or ctx is
// cancelled. Frontends own their event loop; they edit the form state, call
// Session.Trigger on run and Form.Browse for path controls.
type Frontend interface {
	Name() string
	Run(ctx context.Context, session *Session) error
}

// Session bundles what a frontend drives.
type Session struct {
	Form       *form.Form
	Log        *console.Log
	Dispatcher *dispatch.Dispatcher
	Logger     zerolog.Logger
}

// Validate checks that the session is complete.
func (s *Session) Validate() error {
	switch {
	case s == nil:
		return ErrNilSession
	case s.Form == nil:
		return ErrIncompleteSession.with("form")
	case s.Log == nil:
		return ErrIncompleteSession.with("log")
	case s.Dispatcher == nil:
		return ErrIncompleteSession.with("dispatcher")
	}
	return nil
}

// Trigger runs the dispatcher and records the outcome in the diagnostics log.
func (s *Session) Trigger(ctx context.Context) dispatch.Outcome {
	outcome := s.Dispatcher.Trigger(ctx)
	s.Logger.Debug().Stringer("outcome", outcome).Msg("run trigger handled")
	return outcome
}

// Browse opens picker for a path control. Picker errors are written to the
// log; a dismissed picker is silent.
func (s *Session) Browse(ctx context.Context, name string, picker form.Picker) bool {
	chosen, err := s.Form.Browse(ctx, name, picker)
	if err != nil {
		s.Log.Append("Browse failed: " + err.Error())
		s.Logger.Warn().Err(err).Str("field", name).Msg("picker failed")
		return false
	}
	return chosen
}
