package runrunner

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"payopti/internal/ports"
)

// Processor executes the optimization for a claimed job.
type Processor interface {
	Process(ctx context.Context, runID, mode string) error
}

// OptimizeProcessor runs the optimizer and persists the result for the run.
type OptimizeProcessor struct {
	Optimizer ports.Optimizer
	Runs      ports.RunRepository
}

func (p OptimizeProcessor) Process(ctx context.Context, runID, mode string) error {
	result, err := p.Optimizer.Run(ctx, mode)
	if err != nil {
		return err
	}
	return p.Runs.SaveResult(ctx, runID, result)
}

// Run starts worker goroutines that claim jobs and process them.
func Run(ctx context.Context, repo ports.JobRepository, processor Processor, concurrency int, pollInterval time.Duration, log logrus.FieldLogger) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.RunJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(jobsCh)
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						log.WithError(err).Warn("job claim error")
						break
					}
					if !found {
						break
					}
					jobsCh <- job
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				if err := processor.Process(ctx, job.RunID, job.Mode); err != nil {
					_ = repo.MarkFailed(ctx, job.ID, err.Error())
					log.WithFields(logrus.Fields{"worker": idx, "job": job.ID}).WithError(err).Error("run failed")
					continue
				}
				if err := repo.MarkCompleted(ctx, job.ID); err != nil {
					log.WithFields(logrus.Fields{"worker": idx, "job": job.ID}).WithError(err).Warn("complete err")
				}
			}
		}(i)
	}
}

// ProcessInline claims and processes the job for a specific run synchronously,
// using the same processor logic as the background workers. Used when the
// caller asked to wait for the result.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor Processor, runID string) error {
	job, err := repo.StartJobForRun(ctx, runID)
	if err != nil {
		return err
	}
	if err := processor.Process(ctx, job.RunID, job.Mode); err != nil {
		_ = repo.MarkFailed(ctx, job.ID, err.Error())
		return err
	}
	return repo.MarkCompleted(ctx, job.ID)
}
