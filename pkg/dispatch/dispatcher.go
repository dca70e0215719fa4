package dispatch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/console"
	"github.com/goliatone/go-argform/pkg/form"
	"github.com/goliatone/go-argform/pkg/schema"
)

const timeLayout = "15:04:05"

// Outcome reports how a Trigger ended.
type Outcome int

const (
	// OutcomeCompleted means the callback returned without error.
	OutcomeCompleted Outcome = iota
	// OutcomeInvalid means validation failed and the callback was skipped.
	OutcomeInvalid
	// OutcomeFailed means the callback returned an error or panicked.
	OutcomeFailed
	// OutcomeBusy means a callback was already running.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	case OutcomeBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Callback is the user code invoked with validated arguments.
type Callback func(ctx context.Context, run *Run) error

// Run is what a callback receives.
type Run struct {
	ID   string
	Form *form.Form
	Args schema.Args
	// Out writes into the log, one entry per line.
	Out io.Writer

	jobs  *Scheduler
	track func(*Job)
	flush func()
}

// Printf writes formatted text to Out.
func (r *Run) Printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

// Println writes a line to Out.
func (r *Run) Println(args ...any) {
	fmt.Fprintln(r.Out, args...)
}

// Every schedules a job that outlives the callback. See Scheduler.Every.
// A partial line the job leaves in Out is appended when the job stops.
func (r *Run) Every(interval time.Duration, count int, fn func(i int)) (*Job, error) {
	job, err := r.jobs.schedule(interval, count, fn, r.flush)
	if err != nil {
		return nil, err
	}
	if r.track != nil {
		r.track(job)
	}
	return job, nil
}

// Dispatcher moves between idle and running a callback.
type Dispatcher struct {
	form     *form.Form
	log      *console.Log
	callback Callback

	scheduler     *Scheduler
	logger        zerolog.Logger
	now           func() time.Time
	passthrough   io.Writer
	cancelOnRerun bool

	running atomic.Bool
	mu      sync.Mutex
	lastRun []*Job
}

// New wires a dispatcher for f that writes to log and calls cb.
func New(f *form.Form, log *console.Log, cb Callback, opts ...Option) (*Dispatcher, error) {
	switch {
	case f == nil:
		return nil, ErrNilForm
	case log == nil:
		return nil, ErrNilLog
	case cb == nil:
		return nil, ErrNilCallback
	}

	d := &Dispatcher{
		form:     f,
		log:      log,
		callback: cb,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.scheduler == nil {
		d.scheduler = NewScheduler(d.logger)
	}
	return d, nil
}

// Scheduler returns the scheduler runs place their jobs on.
func (d *Dispatcher) Scheduler() *Scheduler { return d.scheduler }

// Running reports whether a callback is in progress.
func (d *Dispatcher) Running() bool { return d.running.Load() }

// Shutdown cancels every scheduled job.
func (d *Dispatcher) Shutdown() { d.scheduler.Shutdown() }

// Trigger performs one run: validate, log the arguments, invoke the callback.
// It never panics and never returns an error; the outcome is written to the
// log and summarized by the returned Outcome.
func (d *Dispatcher) Trigger(ctx context.Context) Outcome {
	if !d.running.CompareAndSwap(false, true) {
		d.log.Append(d.stamp("Run ignored: previous run still in progress"))
		return OutcomeBusy
	}
	defer d.running.Store(false)

	id := uuid.NewString()
	logger := d.logger.With().Str("run", id).Logger()
	logger.Debug().Str("argv", shellquote.Join(d.form.Argv()...)).Msg("run triggered")

	args, err := d.form.Collect()
	if err != nil {
		d.log.Append(d.stamp("Invalid arguments: " + oneLine(err.Error())))
		logger.Info().Err(err).Msg("run rejected")
		return OutcomeInvalid
	}

	d.log.Append(d.stamp("Run pressed. Arguments:"))
	for _, name := range args.Names() {
		value, _ := args.Get(name)
		d.log.Append("  " + name + ": " + formatValue(value))
	}
	d.log.Append("")

	if d.cancelOnRerun {
		d.cancelPrevious(logger)
	}

	out := console.NewWriter(d.log, d.passthrough)
	run := &Run{
		ID:    id,
		Form:  d.form,
		Args:  args,
		Out:   out,
		jobs:  d.scheduler,
		track: d.track,
		flush: func() { _ = out.Flush() },
	}

	started := d.now()
	err = invoke(ctx, d.callback, run)
	if flushErr := out.Flush(); flushErr != nil {
		logger.Warn().Err(flushErr).Msg("flush passthrough")
	}

	if err != nil {
		d.reportFailure(err)
		logger.Error().Err(err).Dur("elapsed", d.now().Sub(started)).Msg("run failed")
		return OutcomeFailed
	}
	logger.Info().Dur("elapsed", d.now().Sub(started)).Msg("run completed")
	return OutcomeCompleted
}

func (d *Dispatcher) stamp(msg string) string {
	return "[" + d.now().Format(timeLayout) + "] " + msg
}

func (d *Dispatcher) track(job *Job) {
	d.mu.Lock()
	d.lastRun = append(d.lastRun, job)
	d.mu.Unlock()
}

func (d *Dispatcher) cancelPrevious(logger zerolog.Logger) {
	d.mu.Lock()
	previous := d.lastRun
	d.lastRun = nil
	d.mu.Unlock()

	for _, job := range previous {
		select {
		case <-job.Done():
		default:
			job.Cancel()
			logger.Debug().Str("job", job.ID()).Msg("cancelled job from previous run")
		}
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// invoke calls cb, turning panics into errors. Every returned error carries a
// stack trace.
func invoke(ctx context.Context, cb Callback, run *Run) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()

	err = cb(ctx, run)
	if err == nil {
		return nil
	}
	var traced stackTracer
	if stderrors.As(err, &traced) {
		return err
	}
	return errors.WithStack(err)
}

func (d *Dispatcher) reportFailure(err error) {
	d.log.Append("Run failed: " + oneLine(err.Error()))
	d.log.Append("Traceback:")

	var traced stackTracer
	if !stderrors.As(err, &traced) {
		return
	}
	for _, line := range strings.Split(fmt.Sprintf("%+v", traced.StackTrace()), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		d.log.Append("  " + strings.ReplaceAll(line, "\t", "  "))
	}
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "None"
	case string:
		return strconv.Quote(typed)
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
