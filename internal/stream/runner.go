package stream

import (
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/telemetry"
)

// Runner owns a live system and updates it at a fixed rate, publishing
// each result to the hub and the telemetry collector. Other goroutines
// reach the system only through Do.
type Runner struct {
	sys       *orrery.System
	hub       *Hub
	telemetry *telemetry.Collector
	limiter   *rate.Limiter
	tick      float64
	logger    kitlog.Logger

	mu     sync.Mutex
	latest orrery.Snapshot
}

// NewRunner updates sys hz times per second. hub and tel may be nil.
func NewRunner(sys *orrery.System, hub *Hub, tel *telemetry.Collector, hz float64, logger kitlog.Logger) *Runner {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Runner{
		sys:       sys,
		hub:       hub,
		telemetry: tel,
		limiter:   rate.NewLimiter(rate.Limit(hz), 1),
		tick:      1 / hz,
		logger:    logger,
		latest:    sys.Snapshot(),
	}
}

// Run steps until ctx is done and returns its error.
func (r *Runner) Run(ctx context.Context) error {
	level.Info(r.logger).Log("msg", "runner started", "hz", float64(r.limiter.Limit()))
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			level.Info(r.logger).Log("msg", "runner stopped", "tick", r.Snapshot().Tick)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		r.Step()
	}
}

// Step performs one update and publishes the result.
func (r *Runner) Step() orrery.Snapshot {
	r.mu.Lock()
	began := time.Now()
	r.sys.Update(r.tick)
	took := time.Since(began)
	snap := r.sys.Snapshot()
	metrics := r.sys.MetricValues()
	r.latest = snap
	r.mu.Unlock()

	if r.telemetry != nil {
		r.telemetry.RecordUpdate(took)
		r.telemetry.Observe(snap, metrics)
	}
	if r.hub != nil {
		if err := r.hub.Broadcast(snap); err != nil {
			level.Error(r.logger).Log("msg", "broadcast failed", "err", err)
		}
	}
	return snap
}

// Do runs fn with exclusive access to the system.
func (r *Runner) Do(fn func(*orrery.System)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.sys)
	r.latest = r.sys.Snapshot()
}

// Snapshot returns the state after the most recent step.
func (r *Runner) Snapshot() orrery.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}
