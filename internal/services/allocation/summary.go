package allocation

import "payopti/internal/domain"

const strategicVRSThreshold = 85.0

// Summarize computes the dashboard aggregates over one payment sequence.
func Summarize(sequence []domain.PaymentSequenceEntry) domain.RunSummary {
	s := domain.RunSummary{}
	vendors := make(map[string]struct{})
	var scheduledVRS float64
	for _, e := range sequence {
		vendors[e.VendorID] = struct{}{}
		s.TotalPayables += e.Amount
		if e.Status != domain.StatusScheduled {
			s.DeferredCount++
			continue
		}
		s.ScheduledCount++
		s.TotalSavings += e.DiscountCaptured
		scheduledVRS += e.VRSScore
		if e.VRSScore > strategicVRSThreshold {
			s.StrategicVendors++
		}
	}
	s.ActiveVendors = len(vendors)
	if s.TotalPayables > 0 {
		s.SavingsRate = s.TotalSavings / s.TotalPayables * 100
	}
	if s.ScheduledCount > 0 {
		s.AverageVRS = scheduledVRS / float64(s.ScheduledCount)
	}
	return s
}

// Compare builds the benchmark block: the optimized sequence against the
// avalanche and snowball heuristics over the same invoice set.
func Compare(sequence []domain.PaymentSequenceEntry, scored []domain.ScoredInvoice, availableCash float64) domain.ComparisonAnalysis {
	opt := domain.BaselineResult{Method: "Multi-Objective Business Value"}
	var vrsTotal float64
	for _, e := range sequence {
		if e.Status == domain.StatusScheduled {
			opt.TotalSavings += e.DiscountCaptured
			opt.VendorsPaid++
		}
		opt.BusinessValue += e.BusinessValue
		vrsTotal += e.VRSScore
	}
	if len(sequence) > 0 {
		opt.AverageVRS = vrsTotal / float64(len(sequence))
	}

	avalanche := Avalanche(scored, availableCash)
	snowball := Snowball(scored, availableCash)

	bestBaselineBV := avalanche.BusinessValue
	if snowball.BusinessValue > bestBaselineBV {
		bestBaselineBV = snowball.BusinessValue
	}

	return domain.ComparisonAnalysis{
		Optimized: opt,
		Avalanche: avalanche,
		Snowball:  snowball,
		Improvement: domain.ImprovementAnalysis{
			SavingsVsAvalanche:     opt.TotalSavings - avalanche.TotalSavings,
			SavingsVsSnowball:      opt.TotalSavings - snowball.TotalSavings,
			BusinessValueAdvantage: opt.BusinessValue - bestBaselineBV,
		},
	}
}
