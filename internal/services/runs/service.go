package runs

import (
	"context"
	"encoding/json"

	"payopti/internal/ports"
)

// Service enqueues and tracks persisted optimization runs.
type Service struct {
	runs ports.RunRepository
}

func New(runs ports.RunRepository) *Service {
	return &Service{runs: runs}
}

// Enqueue records a queued run for the given mode. Mode validity is not
// checked here; an unknown mode falls back to the default at execution
// time, so the run always completes.
func (s *Service) Enqueue(ctx context.Context, mode string) (string, error) {
	return s.runs.CreateRun(ctx, mode)
}

// Status returns the run state and, once completed, the stored result.
func (s *Service) Status(ctx context.Context, runID string) (string, json.RawMessage, error) {
	return s.runs.RunStatus(ctx, runID)
}
