package relationship

import "payopti/internal/domain"

// SpendPercentile returns the share of known vendors whose annual spend is
// at or below the target's, in [0,100]. Empirical CDF, no interpolation,
// ties counted on the inclusive side. With no vendors known it returns the
// neutral midpoint.
func SpendPercentile(spend float64, all []float64) float64 {
	if len(all) == 0 {
		return domain.NeutralPercentile
	}
	below := 0
	for _, s := range all {
		if s <= spend {
			below++
		}
	}
	return float64(below) / float64(len(all)) * 100
}
