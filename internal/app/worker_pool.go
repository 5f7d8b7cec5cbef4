package app

import (
	"context"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs processing jobs on a fixed number of workers fed by a bounded queue
type WorkerPool struct {
	queue   chan string
	workers int
	logger  logger.Logger
}

var _ processing.Dispatcher = (*WorkerPool)(nil)

// NewWorkerPool creates a worker pool sized by the processing settings
func NewWorkerPool(settings *config.ProcessingSettings, logger logger.Logger) (*WorkerPool, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &WorkerPool{
		queue:   make(chan string, settings.QueueSize),
		workers: settings.Workers,
		logger:  logger,
	}, nil
}

// Enqueue hands a job to the pool without blocking
func (p *WorkerPool) Enqueue(jobID string) error {
	select {
	case p.queue <- jobID:
		return nil
	default:
		return processing.ErrQueueFull
	}
}

// Run starts the workers and blocks until ctx is cancelled and the queued jobs are drained.
// Jobs keep running after cancellation so that none is left half written.
func (p *WorkerPool) Run(ctx context.Context, runner processing.JobRunner) error {
	jobCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		worker := i
		g.Go(func() error {
			p.work(ctx, jobCtx, worker, runner)
			return nil
		})
	}

	p.logger.Info("processing workers started", "workers", p.workers, "queue_size", cap(p.queue))
	err := g.Wait()
	p.logger.Info("processing workers stopped")
	return err
}

func (p *WorkerPool) work(ctx, jobCtx context.Context, worker int, runner processing.JobRunner) {
	for {
		select {
		case jobID := <-p.queue:
			p.run(jobCtx, worker, runner, jobID)
		case <-ctx.Done():
			for {
				select {
				case jobID := <-p.queue:
					p.run(jobCtx, worker, runner, jobID)
				default:
					return
				}
			}
		}
	}
}

func (p *WorkerPool) run(ctx context.Context, worker int, runner processing.JobRunner, jobID string) {
	if err := runner.RunJob(ctx, jobID); err != nil {
		p.logger.Error("processing job failed", "worker", worker, "job_id", jobID, "error", err.Error())
	}
}
