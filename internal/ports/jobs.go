package ports

import "context"

type RunJob struct {
	ID    string
	RunID string
	Mode  string
}

// JobRepository supports claiming and updating queued optimization runs.
type JobRepository interface {
	ClaimNext(ctx context.Context) (job RunJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	StartJobForRun(ctx context.Context, runID string) (job RunJob, err error)
}
