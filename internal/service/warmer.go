package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultWarmWorkers = 2
	defaultWarmQueue   = 32
	defaultWarmTimeout = 30 * time.Second
)

type warmTask struct {
	name string
	fn   func(ctx context.Context) error
}

// Warmer is a small bounded worker pool for cache warming. Tasks are
// fire-and-forget: Submit never blocks, failures are only logged and nothing
// ever waits on a task's completion.
type Warmer struct {
	tasks   chan warmTask
	logger  *zap.Logger
	timeout time.Duration

	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

func NewWarmer(workers, queueSize int, logger *zap.Logger) *Warmer {
	if workers <= 0 {
		workers = defaultWarmWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultWarmQueue
	}

	w := &Warmer{
		tasks:   make(chan warmTask, queueSize),
		logger:  logger,
		timeout: defaultWarmTimeout,
	}

	w.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go w.worker()
	}

	return w
}

// Submit queues a task. Returns false when the queue is full or the warmer
// is stopped; the task is simply dropped, warming is best effort.
func (w *Warmer) Submit(name string, fn func(ctx context.Context) error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return false
	}

	select {
	case w.tasks <- warmTask{name: name, fn: fn}:
		return true
	default:
		return false
	}
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.tasks)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Warmer) worker() {
	defer w.wg.Done()

	for task := range w.tasks {
		// Warm tasks outlive the request that spawned them, so they run on
		// their own bounded context.
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		if err := task.fn(ctx); err != nil {
			w.logger.Debug("cache warm task failed",
				zap.String("task", task.name), zap.Error(err))
		}
		cancel()
	}
}
