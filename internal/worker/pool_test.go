package worker

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(2, 8, quietLogger())
	defer p.Stop()

	done := make(chan struct{})
	err := p.Submit("t", func(ctx context.Context) error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool(1, 1, quietLogger())
	defer p.Stop()

	block := make(chan struct{})
	// Occupy the single worker.
	if err := p.Submit("blocker", func(ctx context.Context) error {
		<-block
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Fill the queue. The blocker may not have started yet, so saturation
	// takes at most two more submissions.
	deadline := time.After(2 * time.Second)
	for {
		err := p.Submit("filler", func(ctx context.Context) error {
			<-block
			return nil
		})
		if errors.Is(err, ErrQueueFull) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		select {
		case <-deadline:
			t.Fatal("queue never saturated")
		default:
		}
	}
	close(block)
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1, quietLogger())
	p.Stop()

	err := p.Submit("late", func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestPool_RecoversFromPanic(t *testing.T) {
	p := NewPool(1, 4, quietLogger())
	defer p.Stop()

	if err := p.Submit("bad", func(ctx context.Context) error {
		panic("boom")
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A subsequent task must still run on the same worker.
	done := make(chan struct{})
	if err := p.Submit("good", func(ctx context.Context) error {
		close(done)
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

type countingRunner struct {
	runs int64
	got  atomic.Value
}

func (r *countingRunner) Run(_ context.Context, job models.Job) error {
	atomic.AddInt64(&r.runs, 1)
	r.got.Store(job)
	return nil
}

func TestDispatcher_DeliversJobToRunner(t *testing.T) {
	p := NewPool(1, 4, quietLogger())
	defer p.Stop()
	runner := &countingRunner{}
	d := NewDispatcher(p, runner)

	job := models.Job{Kind: models.JobKindBuildTemplate, Category: "Flood"}
	if err := d.Dispatch(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&runner.runs) == 0 {
		select {
		case <-deadline:
			t.Fatal("job never reached the runner")
		case <-time.After(5 * time.Millisecond):
		}
	}
	got := runner.got.Load().(models.Job)
	if got.Kind != models.JobKindBuildTemplate || got.Category != "Flood" {
		t.Fatalf("job payload mangled: %+v", got)
	}
}
