package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yigit/supervision/internal/pkg/logger"
	"github.com/yigit/supervision/internal/pkg/observability"
)

type Job func(ctx context.Context) error

// Runner schedules periodic jobs until its context is cancelled
type Runner struct {
	ctx context.Context
	wg  sync.WaitGroup
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

// Every runs fn each interval in its own goroutine
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			jobErrors.WithLabelValues(name).Inc()
			observability.CaptureErr(fmt.Errorf("panic in job %s: %v", name, rec))
			logger.Error().Str("job", name).Interface("panic", rec).Msg("Job panicked")
		}
	}()

	if err := fn(r.ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
		observability.CaptureErr(err)
		logger.Error().Err(err).Str("job", name).Msg("Job failed")
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// Wait blocks until every scheduled job goroutine has returned
func (r *Runner) Wait() { r.wg.Wait() }
