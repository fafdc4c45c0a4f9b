// Package worker runs catalog reloads in the background.
package worker

import (
	"context"

	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/metrics"
)

// Job asks for the catalog to be reloaded from Source.
type Job struct {
	Trigger string // "watch", "api", ...
	Source  ports.CatalogSource
}

// Handler performs one job.
type Handler func(ctx context.Context, job Job)

// Pool is a bounded reload queue drained by a single worker, so reloads
// never overlap.
type Pool struct {
	handle Handler
	jobs   chan Job
}

// NewPool creates a pool with the given queue size.
func NewPool(handle Handler, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{handle: handle, jobs: make(chan Job, queueSize)}
}

// Submit queues a job without blocking. It reports false when the queue is
// full and the job was dropped.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		metrics.ReloadQueueDropped.Inc()
		logging.Warn().Str("trigger", job.Trigger).Str("source", describe(job.Source)).Msg("reload queue full, dropping job")
		return false
	}
}

// Serve processes jobs until ctx is cancelled.
func (p *Pool) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-p.jobs:
			p.handle(ctx, job)
		}
	}
}

func (p *Pool) String() string { return "reload-pool" }

func describe(src ports.CatalogSource) string {
	if src == nil {
		return ""
	}
	return src.Describe()
}
