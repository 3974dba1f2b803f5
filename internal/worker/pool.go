package worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "crisis_jobs_total",
	Help: "Background jobs by terminal outcome.",
}, []string{"result"})

// ErrQueueFull is returned when the pool cannot take another job; the
// caller must surface an explicit failure instead of a false acknowledgement.
var ErrQueueFull = errors.New("worker queue full")

// ErrStopped is returned when the pool is shutting down.
var ErrStopped = errors.New("worker pool stopped")

// Task is one background unit of work. A non-nil error means the job
// failed terminally; the pool logs it and nothing else observes it.
type Task func(ctx context.Context) error

type submission struct {
	name string
	task Task
}

// Pool runs submitted tasks on a fixed set of workers with a bounded
// queue. Tasks outlive the request that submitted them: they run against
// the pool's own lifetime context, not the request context. A panic inside
// a task is recovered and logged; it never crashes the process.
type Pool struct {
	tasks  chan submission
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

// NewPool starts workers goroutines consuming a queue of queueSize.
func NewPool(workers, queueSize int, logger *log.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[WORK] ", log.LstdFlags)
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan submission, queueSize),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit schedules a task. It never blocks: a saturated queue yields
// ErrQueueFull immediately.
func (p *Pool) Submit(name string, task Task) error {
	select {
	case <-p.ctx.Done():
		return ErrStopped
	default:
	}
	select {
	case p.tasks <- submission{name: name, task: task}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains nothing: queued tasks that have not started are dropped,
// running tasks are cancelled through the pool context, and Stop returns
// once all workers exit.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case sub := <-p.tasks:
			p.runOne(sub)
		}
	}
}

func (p *Pool) runOne(sub submission) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Printf("panic in job %s: %v", sub.name, rec)
			jobsTotal.WithLabelValues("panic").Inc()
		}
	}()
	if err := sub.task(p.ctx); err != nil {
		p.logger.Printf("job %s failed: %v", sub.name, err)
		jobsTotal.WithLabelValues("failed").Inc()
		return
	}
	jobsTotal.WithLabelValues("ok").Inc()
}
