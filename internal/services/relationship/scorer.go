package relationship

import (
	"math"

	"payopti/internal/domain"
)

// Factor weights. Hard factors blend spend scale with our own payment
// reliability toward the vendor; soft factors average longevity, delivery
// reliability, and communication friction.
const (
	hardWeight            = 0.6
	softWeight            = 0.4
	spendWeight           = 0.7
	repaymentWeight       = 0.3
	longevityCeilingYears = 15.0
)

// Score computes the vendor relationship score from the vendor's current
// snapshot and the population of all known annual spends. Recomputed fresh
// on every allocation run; nothing is cached.
//
// The final score is not clamped. A spend percentile of 100 combined with
// perfect soft factors can push it above 100; callers tolerate that rather
// than silently losing the ordering information.
func Score(v domain.VendorRecord, allSpends []float64) domain.RelationshipScore {
	totalValue := SpendPercentile(v.AnnualContractValue, allSpends)

	repayment := domain.NeutralRepaymentScore
	if v.History.TotalInvoices > 0 {
		repayment = float64(v.History.PaidOnTime) / float64(v.History.TotalInvoices) * 100
	}

	hard := totalValue*spendWeight + repayment*repaymentWeight

	longevity := math.Min(100, v.YearsInBusiness/longevityCeilingYears*100)
	reliability := v.Performance.OnTimeDeliveryRate
	communication := math.Max(0, 100-2*float64(v.Communication.FrictionEmails))
	soft := (longevity + reliability + communication) / 3

	return domain.RelationshipScore{
		HardFactorsScore:   hard,
		SoftFactorsScore:   soft,
		FinalVRS:           hard*hardWeight + soft*softWeight,
		TotalValueScore:    totalValue,
		RepaymentScore:     repayment,
		LongevityScore:     longevity,
		ReliabilityScore:   reliability,
		CommunicationScore: communication,
	}
}
