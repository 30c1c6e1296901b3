package optimizer

import (
	"context"
	"fmt"

	"payopti/internal/domain"
)

// Compare runs the pipeline once per named mode and reports which
// configuration wins on savings and on relationship preservation. A failed
// mode is recorded and the batch continues.
func (s *Service) Compare(ctx context.Context, modes []string) (domain.ModeComparison, error) {
	outcomes := make(map[string]domain.ModeOutcome, len(modes))
	succeeded := 0
	for _, mode := range modes {
		result, err := s.Run(ctx, mode)
		if err != nil {
			s.log.WithError(err).WithField("mode", mode).Error("mode run failed")
			outcomes[mode] = domain.ModeOutcome{Status: "failed", Error: err.Error()}
			continue
		}
		r := result
		outcomes[mode] = domain.ModeOutcome{Status: "success", Result: &r}
		succeeded++
	}

	return domain.ModeComparison{
		ModeResults: outcomes,
		Comparative: compareOutcomes(outcomes),
		Processing: domain.ComparisonMetadata{
			ModesRequested:  len(modes),
			ModesSuccessful: succeeded,
			ModesFailed:     len(modes) - succeeded,
			ProcessedAt:     s.clock.Now(),
		},
	}, nil
}

func compareOutcomes(outcomes map[string]domain.ModeOutcome) domain.ComparativeAnalysis {
	metrics := make(map[string]domain.ModeMetrics)
	for mode, outcome := range outcomes {
		if outcome.Status != "success" {
			continue
		}
		r := outcome.Result
		metrics[mode] = domain.ModeMetrics{
			ModeName:         r.Mode.ModeName,
			TotalSavings:     r.Summary.TotalSavings,
			SavingsRate:      r.Summary.SavingsRate,
			VendorsScheduled: r.Summary.ScheduledCount,
			AverageVRS:       r.Summary.AverageVRS,
			ReserveRatio:     r.Mode.Cash.ReserveRatio,
		}
	}
	if len(metrics) == 0 {
		return domain.ComparativeAnalysis{
			Recommendations: []string{"No valid mode comparisons available"},
		}
	}

	var best domain.BestPerformers
	first := true
	for mode, m := range metrics {
		if first || m.TotalSavings > best.HighestSavings.Value {
			best.HighestSavings = domain.ModePick{Mode: mode, Value: m.TotalSavings}
		}
		if first || m.AverageVRS > best.HighestVRS.Value {
			best.HighestVRS = domain.ModePick{Mode: mode, Value: m.AverageVRS}
		}
		first = false
	}

	return domain.ComparativeAnalysis{
		Modes:           metrics,
		BestPerformers:  best,
		Recommendations: recommendations(metrics),
	}
}

func recommendations(metrics map[string]domain.ModeMetrics) []string {
	var bestSavings, bestVRS, bestConservative string
	for mode, m := range metrics {
		if bestSavings == "" || m.TotalSavings > metrics[bestSavings].TotalSavings {
			bestSavings = mode
		}
		if bestVRS == "" || m.AverageVRS > metrics[bestVRS].AverageVRS {
			bestVRS = mode
		}
		if m.ReserveRatio > 0.3 {
			if bestConservative == "" || m.TotalSavings > metrics[bestConservative].TotalSavings {
				bestConservative = mode
			}
		}
	}

	recs := []string{
		fmt.Sprintf("For maximum financial returns: use %s mode ($%.0f savings)",
			metrics[bestSavings].ModeName, metrics[bestSavings].TotalSavings),
		fmt.Sprintf("For strongest vendor relationships: use %s mode (VRS: %.1f)",
			metrics[bestVRS].ModeName, metrics[bestVRS].AverageVRS),
	}
	if bestConservative != "" {
		recs = append(recs, fmt.Sprintf("For a conservative approach: use %s mode (high reserves, $%.0f savings)",
			metrics[bestConservative].ModeName, metrics[bestConservative].TotalSavings))
	}
	return recs
}
