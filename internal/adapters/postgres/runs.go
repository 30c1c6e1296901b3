package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"payopti/internal/domain"
	"payopti/internal/ports"
)

// RunRepository

// CreateRun inserts a queued optimization run plus its job row and returns
// the run id. The id is generated here so callers can reference the run
// before the insert commits.
func (db *DB) CreateRun(ctx context.Context, mode string) (string, error) {
	runID := uuid.NewString()
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO optimization_runs (id, mode, status)
        VALUES ($1, $2, 'queued')
    `, runID, mode)
	if err != nil {
		return "", err
	}
	_, err = db.Pool.Exec(ctx, `INSERT INTO run_jobs (run_id) VALUES ($1)`, runID)
	return runID, err
}

func (db *DB) RunStatus(ctx context.Context, runID string) (string, json.RawMessage, error) {
	var status string
	var result json.RawMessage
	err := db.Pool.QueryRow(ctx, `
        SELECT status, result FROM optimization_runs WHERE id = $1
    `, runID).Scan(&status, &result)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, ports.ErrRunNotFound
	}
	return status, result, err
}

// SaveResult stores the run output as jsonb. Status transitions stay with the
// job repository so a crash between the two leaves the run failed, not stuck.
func (db *DB) SaveResult(ctx context.Context, runID string, result domain.RunResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal run result: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
        UPDATE optimization_runs SET result = $2 WHERE id = $1
    `, runID, payload)
	return err
}
