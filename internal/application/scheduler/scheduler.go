package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/pkg/utils"
)

var (
	// ErrJobNotFound is returned for an unknown job name
	ErrJobNotFound = errors.New("job not found")
	// ErrJobRunning is returned by RunNow while the job is executing
	ErrJobRunning = errors.New("job already running")
	// ErrAlreadyStarted is returned when registering or starting a running scheduler
	ErrAlreadyStarted = errors.New("scheduler already started")
)

// Job is one unit of periodic work. It must be safe to re-run on partially
// processed data and should return promptly once ctx is cancelled.
type Job func(ctx context.Context) error

// Observer receives job execution events, typically for metrics
type Observer interface {
	JobStarted(name string)
	JobFinished(name string, duration time.Duration, err error)
}

// JobInfo describes a registered job
type JobInfo struct {
	Name      string
	Interval  time.Duration
	Running   bool
	Runs      int
	Failures  int
	LastRunAt *time.Time
	LastError string
}

type entry struct {
	name     string
	interval time.Duration
	job      Job

	// run serializes executions so one job name never overlaps itself
	run sync.Mutex

	statsMu   sync.Mutex
	running   bool
	runs      int
	failures  int
	lastRunAt *time.Time
	lastError string
}

// Scheduler fires named jobs on fixed intervals measured from Start.
// A run that overruns its interval delays the next firing instead of
// skipping it; several missed firings collapse into one.
type Scheduler struct {
	mu       sync.Mutex
	jobs     map[string]*entry
	logger   common.Logger
	observer Observer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithObserver attaches an execution observer
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// New creates an empty scheduler
func New(logger common.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = common.NopLogger{}
	}
	s := &Scheduler{
		jobs:   make(map[string]*entry),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a job. Registration is closed once the scheduler starts.
func (s *Scheduler) Register(name string, interval time.Duration, job Job) error {
	if name == "" {
		return fmt.Errorf("job name cannot be empty")
	}
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	if job == nil {
		return fmt.Errorf("job %s: function cannot be nil", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	s.jobs[name] = &entry{name: name, interval: interval, job: job}
	return nil
}

// Start launches one timer goroutine per job. The first firing of each job
// happens one interval after Start.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	start := time.Now()
	for _, e := range s.jobs {
		s.wg.Add(1)
		go s.loop(runCtx, e, start)
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels the job context and waits for the timer goroutines to exit
// or for ctx to end. Jobs finish the entity they are working on; the rest
// is left for the next cycle.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out with jobs still running")
		return ctx.Err()
	}
}

// RunNow executes a job immediately on the caller's goroutine. It fails
// with ErrJobRunning instead of waiting when the job is already executing.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	e, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	if !e.run.TryLock() {
		return fmt.Errorf("%w: %s", ErrJobRunning, name)
	}
	defer e.run.Unlock()

	return s.execute(ctx, e)
}

// Jobs lists the registered jobs ordered by name
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	infos := make([]JobInfo, 0, len(entries))
	for _, e := range entries {
		e.statsMu.Lock()
		infos = append(infos, JobInfo{
			Name:      e.name,
			Interval:  e.interval,
			Running:   e.running,
			Runs:      e.runs,
			Failures:  e.failures,
			LastRunAt: e.lastRunAt,
			LastError: e.lastError,
		})
		e.statsMu.Unlock()
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (s *Scheduler) loop(ctx context.Context, e *entry, start time.Time) {
	defer s.wg.Done()

	next := start.Add(e.interval)
	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// Waits for a manual run in progress rather than skipping.
		e.run.Lock()
		_ = s.execute(ctx, e)
		e.run.Unlock()

		if ctx.Err() != nil {
			return
		}

		next = nextFiring(next, e.interval, time.Now())
		timer.Reset(time.Until(next))
	}
}

// nextFiring advances the schedule by one interval. When the run overran,
// the missed slots collapse to the latest one, which is already due.
func nextFiring(prev time.Time, interval time.Duration, now time.Time) time.Time {
	next := prev.Add(interval)
	if next.After(now) {
		return next
	}
	missed := now.Sub(next) / interval
	return next.Add(missed * interval)
}

// execute runs the job with panic isolation. The caller holds e.run.
func (s *Scheduler) execute(ctx context.Context, e *entry) (err error) {
	logger := s.logger.With("job", e.name, "run_id", utils.GenerateRunID(e.name))
	startedAt := time.Now()

	e.statsMu.Lock()
	e.running = true
	e.statsMu.Unlock()
	if s.observer != nil {
		s.observer.JobStarted(e.name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", e.name, r)
			logger.Error("job panicked", "panic", r, "stack", string(debug.Stack()))
		}

		duration := time.Since(startedAt)
		e.statsMu.Lock()
		e.running = false
		e.runs++
		e.lastRunAt = &startedAt
		e.lastError = ""
		if err != nil {
			e.failures++
			e.lastError = err.Error()
		}
		e.statsMu.Unlock()

		if s.observer != nil {
			s.observer.JobFinished(e.name, duration, err)
		}
		if err != nil {
			logger.Error("job failed", "duration", duration, "error", err)
		} else {
			logger.Debug("job finished", "duration", duration)
		}
	}()

	return e.job(common.WithLogger(ctx, logger))
}
