package optimizer

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"payopti/internal/domain"
	"payopti/internal/ports"
	"payopti/internal/services/allocation"
	"payopti/internal/services/relationship"
	"payopti/internal/services/valuation"
)

const defaultRawTerms = "Net 30"

// Service runs the full scoring and allocation pipeline for one mode:
// terms interpretation, relationship scoring, business valuation, greedy
// allocation, baselines, and reporting. All inputs are read-only; every
// run recomputes scores from the current snapshots.
type Service struct {
	vendors  ports.VendorRepository
	invoices ports.InvoiceRepository
	config   ports.ConfigRepository
	terms    ports.TermsInterpreter
	analyst  ports.VendorAnalyst
	clock    clockwork.Clock
	log      logrus.FieldLogger
}

func New(vendors ports.VendorRepository, invoices ports.InvoiceRepository, config ports.ConfigRepository,
	terms ports.TermsInterpreter, analyst ports.VendorAnalyst, clock clockwork.Clock, log logrus.FieldLogger) *Service {
	return &Service{
		vendors:  vendors,
		invoices: invoices,
		config:   config,
		terms:    terms,
		analyst:  analyst,
		clock:    clock,
		log:      log,
	}
}

func (s *Service) Run(ctx context.Context, mode string) (domain.RunResult, error) {
	cfg, err := s.resolveMode(ctx, mode)
	if err != nil {
		return domain.RunResult{}, err
	}
	log := s.log.WithField("mode", cfg.Key)

	availableCash, err := s.invoices.AvailableCash(ctx)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("cash constraints: %w", err)
	}
	params, err := s.config.FinancialParams(ctx)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("financial parameters: %w", err)
	}
	spends, err := s.vendors.AnnualSpends(ctx)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("annual spends: %w", err)
	}
	batch, err := s.invoices.Batch(ctx)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("invoice batch: %w", err)
	}

	reserve := availableCash * cfg.CashReserveRatio
	usable := allocation.UsableCash(availableCash, cfg.CashReserveRatio)
	log.WithFields(logrus.Fields{
		"available": availableCash,
		"reserve":   reserve,
		"usable":    usable,
		"invoices":  len(batch),
	}).Info("starting allocation run")

	model := valuation.New(params, s.clock)
	scored := make([]domain.ScoredInvoice, 0, len(batch))
	vendorIDs := make(map[string]struct{})
	for _, inv := range batch {
		vendor, found, err := s.vendors.Vendor(ctx, inv.VendorID)
		if err != nil {
			return domain.RunResult{}, fmt.Errorf("vendor %s: %w", inv.VendorID, err)
		}
		if !found {
			vendor = domain.UnknownVendor(inv.VendorID)
		}
		vendorIDs[inv.VendorID] = struct{}{}

		raw := inv.RawTerms
		if raw == "" {
			raw = defaultRawTerms
		}
		pt := s.terms.Interpret(ctx, raw)
		rel := relationship.Score(vendor, spends)
		value := model.Value(inv, pt, rel, vendor)
		insight := s.analyst.Analyze(ctx, domain.VendorContext{
			Vendor:       vendor,
			Relationship: rel,
			Value:        value,
		}, cfg.Key)

		scored = append(scored, domain.ScoredInvoice{
			Invoice:      inv,
			VendorName:   vendor.DisplayName,
			Terms:        pt,
			Relationship: rel,
			Value:        value,
			Insight:      insight,
		})
	}

	sequence := allocation.Allocate(scored, usable)
	summary := allocation.Summarize(sequence)

	var totalAmount, totalSavings float64
	for _, e := range sequence {
		totalAmount += e.Amount
		totalSavings += e.DiscountCaptured
	}

	return domain.RunResult{
		PaymentSequence: sequence,
		VendorAnalysis:  categorize(scored),
		Negotiations:    negotiationPlans(scored),
		Comparison:      allocation.Compare(sequence, scored, availableCash),
		Summary:         summary,
		Mode: domain.ModeReport{
			ModeUsed:    cfg.Key,
			ModeName:    cfg.Name,
			Description: cfg.Description,
			Weights:     cfg.Weights,
			Cash: domain.CashBreakdown{
				AvailableCash:  availableCash,
				MinimumReserve: reserve,
				UsableCash:     usable,
				ReserveRatio:   cfg.CashReserveRatio,
			},
		},
		Metadata: domain.RunMetadata{
			InvoicesProcessed: len(batch),
			VendorsAnalyzed:   len(vendorIDs),
			ProcessedAt:       s.clock.Now(),
			TotalAmount:       totalAmount,
			TotalSavings:      totalSavings,
		},
	}, nil
}

// resolveMode falls back to the default mode when the requested name is
// unknown; an unknown mode is a warning, not a failure.
func (s *Service) resolveMode(ctx context.Context, mode string) (domain.ModeConfig, error) {
	if mode == "" {
		mode = domain.DefaultModeKey
	}
	cfg, found, err := s.config.Mode(ctx, mode)
	if err != nil {
		return domain.ModeConfig{}, fmt.Errorf("mode %q: %w", mode, err)
	}
	if found {
		return cfg, nil
	}
	s.log.WithField("mode", mode).Warn("mode not configured, falling back to default")
	cfg, found, err = s.config.Mode(ctx, domain.DefaultModeKey)
	if err != nil {
		return domain.ModeConfig{}, fmt.Errorf("default mode: %w", err)
	}
	if !found {
		return domain.BuiltinModes()[domain.DefaultModeKey], nil
	}
	return cfg, nil
}
