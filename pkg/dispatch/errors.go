package dispatch

import "errors"

var (
	ErrNilForm         = errors.New("dispatch: form is required")
	ErrNilLog          = errors.New("dispatch: log is required")
	ErrNilCallback     = errors.New("dispatch: callback is required")
	ErrSchedulerClosed = errors.New("dispatch: scheduler is shut down")
	ErrInvalidJob      = errors.New("dispatch: job needs a positive interval and count")
)
