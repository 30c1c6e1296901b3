package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"payopti/internal/ports"
)

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.RunJob, found bool, err error) {
	// Use explicit transaction to safely lock and transition state
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// Lock the next queued job
	err = tx.QueryRow(ctx, `
        SELECT j.id, j.run_id, r.mode
        FROM run_jobs j
        JOIN optimization_runs r ON r.id = j.run_id
        WHERE j.status = 'queued'
        ORDER BY j.queued_at
        FOR UPDATE OF j SKIP LOCKED
        LIMIT 1
    `).Scan(&job.ID, &job.RunID, &job.Mode)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	// Mark job running and bump attempts
	if _, err = tx.Exec(ctx, `
        UPDATE run_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
    `, job.ID); err != nil {
		return job, false, err
	}
	// Ensure the run reflects running
	if _, err = tx.Exec(ctx, `
        UPDATE optimization_runs SET status='running', started_at=COALESCE(started_at, now()) WHERE id=$1
    `, job.RunID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	// complete job and run atomically
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var runID string
	if err = tx.QueryRow(ctx, `SELECT run_id FROM run_jobs WHERE id=$1`, jobID).Scan(&runID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE run_jobs SET status='completed', finished_at=now() WHERE id=$1`, jobID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE optimization_runs SET status='completed', finished_at=now() WHERE id=$1`, runID); err != nil {
		return err
	}
	return nil
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()
	var runID string
	if err = tx.QueryRow(ctx, `SELECT run_id FROM run_jobs WHERE id=$1`, jobID).Scan(&runID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE run_jobs SET status='failed', finished_at=now() WHERE id=$1`, jobID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE optimization_runs SET status='failed', failure_reason=$2, finished_at=now() WHERE id=$1`, runID, reason); err != nil {
		return err
	}
	return nil
}

// StartJobForRun marks the job for a specific run as running and returns it.
// Used by the inline path when a caller waits on the response.
func (db *DB) StartJobForRun(ctx context.Context, runID string) (job ports.RunJob, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// lock specific job row if queued
	err = tx.QueryRow(ctx, `
        SELECT j.id, j.run_id, r.mode
        FROM run_jobs j
        JOIN optimization_runs r ON r.id = j.run_id
        WHERE j.run_id = $1 AND j.status = 'queued'
        FOR UPDATE OF j SKIP LOCKED
    `, runID).Scan(&job.ID, &job.RunID, &job.Mode)
	if err != nil {
		return job, err
	}
	if _, err = tx.Exec(ctx, `UPDATE run_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1`, job.ID); err != nil {
		return job, err
	}
	if _, err = tx.Exec(ctx, `UPDATE optimization_runs SET status='running', started_at=COALESCE(started_at, now()) WHERE id=$1`, runID); err != nil {
		return job, err
	}
	return job, nil
}
