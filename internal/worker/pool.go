// Package worker runs fire-and-forget persistence tasks off the request
// path. Saves are best-effort: a full queue drops the task with a warning
// instead of blocking the caller.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/deckwise/i18trainer/internal/logger"
)

// Task is one unit of background work.
type Task struct {
	Name string
	Run  func(context.Context) error
}

// Pool is a fixed-size worker pool with a bounded queue.
type Pool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		tasks:   make(chan Task, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for task := range p.tasks {
				taskLog := workerLog.WithField("task", task.Name)
				start := time.Now()
				if err := task.Run(logger.NewContext(ctx, taskLog)); err != nil {
					taskLog.Error("task failed after %v: %v", time.Since(start), err)
				} else {
					taskLog.Debug("task completed in %v", time.Since(start))
				}
			}
			workerLog.Debug("worker shutting down")
		}(i + 1)
	}
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	close(p.tasks)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// Submit enqueues a task without blocking. Returns false when the queue is
// full and the task was dropped.
func (p *Pool) Submit(task Task) bool {
	select {
	case p.tasks <- task:
		return true
	default:
		p.log.Warn("queue full, dropping task: %s", task.Name)
		return false
	}
}

// QueueSize returns the current number of pending tasks.
func (p *Pool) QueueSize() int {
	return len(p.tasks)
}
