package ports

import (
	"context"

	"payopti/internal/domain"
)

// Optimizer runs the scoring and allocation pipeline.
type Optimizer interface {
	Run(ctx context.Context, mode string) (domain.RunResult, error)
	Compare(ctx context.Context, modes []string) (domain.ModeComparison, error)
}

// TermsInterpreter converts raw payment-terms text into a structured record.
// It never fails: unusable input or a broken collaborator degrades to the
// deterministic fallback.
type TermsInterpreter interface {
	Interpret(ctx context.Context, raw string) domain.PaymentTerms
}

// VendorAnalyst produces the narrative insight for a vendor. Like the terms
// interpreter it never fails; a failure substitutes the default insight.
type VendorAnalyst interface {
	Analyze(ctx context.Context, vc domain.VendorContext, mode string) domain.VendorInsight
}
