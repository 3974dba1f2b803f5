package worker

import (
	"context"
	"fmt"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

// JobRunner consumes one job to completion.
type JobRunner interface {
	Run(ctx context.Context, job models.Job) error
}

// Dispatcher accepts validated jobs and schedules them on the pool. The
// caller gets an immediate answer: nil ("accepted, not yet complete") or a
// scheduling error, never a silently dropped job.
type Dispatcher struct {
	pool   *Pool
	runner JobRunner
}

func NewDispatcher(pool *Pool, runner JobRunner) *Dispatcher {
	return &Dispatcher{pool: pool, runner: runner}
}

// Dispatch schedules one job. Returns ErrQueueFull or ErrStopped when the
// job cannot be taken.
func (d *Dispatcher) Dispatch(job models.Job) error {
	name := fmt.Sprintf("%s:%s", job.Kind, job.Category)
	return d.pool.Submit(name, func(ctx context.Context) error {
		return d.runner.Run(ctx, job)
	})
}
