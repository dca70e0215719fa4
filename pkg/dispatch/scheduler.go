package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler runs fixed-interval jobs on their own goroutines.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger

	mu     sync.Mutex
	jobs   map[string]*Job
	wg     sync.WaitGroup
	closed bool
}

// Job is a handle on a scheduled job.
type Job struct {
	id        string
	interval  time.Duration
	count     int
	cancel    context.CancelFunc
	done      chan struct{}
	fired     atomic.Int64
	cancelled atomic.Bool
}

// NewScheduler creates a scheduler. Jobs stop when Shutdown is called.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		jobs:   make(map[string]*Job),
	}
}

// Every calls fn count times, sleeping interval before each call. fn receives
// the zero-based iteration. The job ends by itself after the last call.
func (s *Scheduler) Every(interval time.Duration, count int, fn func(i int)) (*Job, error) {
	return s.schedule(interval, count, fn, nil)
}

// schedule starts a job; finish, when set, runs once the job has stopped for
// any reason and before Wait returns.
func (s *Scheduler) schedule(interval time.Duration, count int, fn func(i int), finish func()) (*Job, error) {
	if interval <= 0 || count <= 0 || fn == nil {
		return nil, ErrInvalidJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSchedulerClosed
	}

	ctx, cancel := context.WithCancel(s.ctx)
	job := &Job{
		id:       uuid.NewString(),
		interval: interval,
		count:    count,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.jobs[job.id] = job
	s.wg.Add(1)
	go s.loop(ctx, job, fn, finish)

	s.logger.Debug().
		Str("job", job.id).
		Dur("interval", interval).
		Int("count", count).
		Msg("job scheduled")
	return job, nil
}

func (s *Scheduler) loop(ctx context.Context, job *Job, fn func(int), finish func()) {
	defer s.wg.Done()
	defer close(job.done)
	defer s.forget(job)
	defer job.cancel()
	if finish != nil {
		defer finish()
	}

	timer := time.NewTimer(job.interval)
	defer timer.Stop()

	for i := 0; i < job.count; i++ {
		select {
		case <-ctx.Done():
			job.cancelled.Store(true)
			s.logger.Debug().Str("job", job.id).Int64("fired", job.fired.Load()).Msg("job cancelled")
			return
		case <-timer.C:
		}

		if err := call(fn, i); err != nil {
			s.logger.Error().Err(err).Str("job", job.id).Int("iteration", i).Msg("job stopped")
			return
		}
		job.fired.Add(1)
		timer.Reset(job.interval)
	}
	s.logger.Debug().Str("job", job.id).Msg("job finished")
}

func call(fn func(int), i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn(i)
	return nil
}

func (s *Scheduler) forget(job *Job) {
	s.mu.Lock()
	delete(s.jobs, job.id)
	s.mu.Unlock()
}

// Active reports how many jobs are still running.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Wait blocks until every running job has ended.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Shutdown cancels all jobs, waits for them and rejects new ones.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// ID returns the job identifier.
func (j *Job) ID() string { return j.id }

// Cancel stops the job before its next call. Calling it after the job ended is
// a no-op.
func (j *Job) Cancel() { j.cancel() }

// Done is closed once the job has ended, either way.
func (j *Job) Done() <-chan struct{} { return j.done }

// Fired reports how many calls completed.
func (j *Job) Fired() int { return int(j.fired.Load()) }

// Cancelled reports whether the job ended before its last call.
func (j *Job) Cancelled() bool { return j.cancelled.Load() }
