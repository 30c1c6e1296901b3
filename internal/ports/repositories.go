package ports

import (
	"context"
	"encoding/json"

	"payopti/internal/domain"
)

// VendorRepository serves read-only vendor snapshots keyed by vendor id.
type VendorRepository interface {
	Vendor(ctx context.Context, vendorID string) (v domain.VendorRecord, found bool, err error)
	// AnnualSpends returns the annual contract value of every known vendor,
	// the population for spend-percentile ranking.
	AnnualSpends(ctx context.Context) ([]float64, error)
}

// InvoiceRepository serves the outstanding invoice batch and its cash
// constraints.
type InvoiceRepository interface {
	Batch(ctx context.Context) ([]domain.Invoice, error)
	AvailableCash(ctx context.Context) (float64, error)
}

// ConfigRepository serves mode configurations and financial parameters.
type ConfigRepository interface {
	Mode(ctx context.Context, name string) (cfg domain.ModeConfig, found bool, err error)
	FinancialParams(ctx context.Context) (domain.FinancialParams, error)
}

// RunRepository persists optimization runs and their results.
type RunRepository interface {
	CreateRun(ctx context.Context, mode string) (runID string, err error)
	// RunStatus returns ErrRunNotFound for an unknown run id.
	RunStatus(ctx context.Context, runID string) (status string, result json.RawMessage, err error)
	SaveResult(ctx context.Context, runID string, result domain.RunResult) error
}

var ErrRunNotFound = errString("run not found")

type errString string

func (e errString) Error() string { return string(e) }
