package setup

import (
	"context"
	"fmt"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// EngineOptions configure NewEngine
type EngineOptions struct {
	Repositories Repositories
	Settings     Settings
	Intervals    Intervals
	Clock        shared.Clock
	Random       shared.RandomFactory
	Logger       common.Logger
	Middlewares  []mediator.Middleware
	Observer     scheduler.Observer
}

// Engine is the simulation composition: handlers behind a mediator and one
// scheduled job per processor
type Engine struct {
	mediator  mediator.Mediator
	scheduler *scheduler.Scheduler
	logger    common.Logger
}

// NewEngine wires handlers and jobs. Nothing runs until Start.
func NewEngine(opts EngineOptions) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = common.NopLogger{}
	}

	m := mediator.NewMediator()
	for _, mw := range opts.Middlewares {
		m.RegisterMiddleware(mw)
	}

	registry := NewHandlerRegistry(opts.Repositories, opts.Settings, opts.Clock, opts.Random)
	if err := registry.RegisterAll(m); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	var schedOpts []scheduler.Option
	if opts.Observer != nil {
		schedOpts = append(schedOpts, scheduler.WithObserver(opts.Observer))
	}
	s := scheduler.New(logger, schedOpts...)

	intervals := opts.Intervals
	if intervals == nil {
		intervals = DefaultIntervals()
	}
	if err := RegisterJobs(s, m, intervals); err != nil {
		return nil, err
	}

	return &Engine{mediator: m, scheduler: s, logger: logger}, nil
}

// Mediator exposes the command bus for manual commands
func (e *Engine) Mediator() mediator.Mediator {
	return e.mediator
}

// Start begins firing every job
func (e *Engine) Start(ctx context.Context) error {
	return e.scheduler.Start(ctx)
}

// Stop requests a graceful shutdown and waits until ctx ends
func (e *Engine) Stop(ctx context.Context) error {
	return e.scheduler.Stop(ctx)
}

// RunJob executes one job synchronously
func (e *Engine) RunJob(ctx context.Context, name string) error {
	return e.scheduler.RunNow(ctx, name)
}

// Jobs describes the registered jobs
func (e *Engine) Jobs() []scheduler.JobInfo {
	return e.scheduler.Jobs()
}
