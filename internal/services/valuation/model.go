package valuation

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"payopti/internal/domain"
)

// Model converts an invoice plus its resolved terms and vendor intelligence
// into one comparable business value. Pure function of its inputs and the
// injected clock; the urgency term is the only date-dependent step, which
// makes identical inputs yield different values across calendar days. That
// non-determinism is part of the contract, not a bug.
type Model struct {
	params domain.FinancialParams
	clock  clockwork.Clock
}

func New(params domain.FinancialParams, clock clockwork.Clock) *Model {
	return &Model{params: params, clock: clock}
}

func (m *Model) Value(inv domain.Invoice, terms domain.PaymentTerms, rel domain.RelationshipScore, vendor domain.VendorRecord) domain.BusinessValue {
	discountValue := inv.InvoiceAmount * terms.DiscountRate / 100
	daysEarly := terms.NetDays - terms.DiscountDays
	if daysEarly < 0 {
		daysEarly = 0
	}
	opportunityCost := inv.InvoiceAmount * (m.params.WACC / 365) * float64(daysEarly)
	// A discount not worth taking contributes zero, never a penalty.
	netBenefit := math.Max(0, discountValue-opportunityCost)

	bv := domain.BusinessValue{
		NetFinancialBenefit:      netBenefit,
		BusinessImpactMultiplier: lookup(m.params.ImpactMultipliers, vendor.BusinessImpact, 1.5),
		RelationshipMultiplier:   math.Min(2.0, 1.0+vendor.YearsAsVendor/10),
		RiskMultiplier:           m.riskMultiplier(vendor.Performance.FinancialStressScore),
		// Maps VRS 0..100 onto 0.8..1.2 linearly. Not clamped: a VRS above
		// 100 yields a multiplier above 1.2, consistent with the scorer.
		VRSMultiplier:     0.8 + rel.FinalVRS/100*0.4,
		UrgencyMultiplier: m.urgencyMultiplier(inv.IssueDate, terms.DiscountDays),
		MarketMultiplier:  lookup(m.params.MarketMultipliers, vendor.Market.Position, 1.0),
	}
	bv.FinalBusinessValue = bv.NetFinancialBenefit *
		bv.BusinessImpactMultiplier *
		bv.RelationshipMultiplier *
		bv.RiskMultiplier *
		bv.VRSMultiplier *
		bv.UrgencyMultiplier *
		bv.MarketMultiplier
	return bv
}

// riskMultiplier buckets a 0-100 financial-stress score, boundaries
// inclusive on the upper bound (a score of exactly 20 is very_low).
func (m *Model) riskMultiplier(stress float64) float64 {
	rm := m.params.RiskMultipliers
	switch {
	case stress <= 20:
		return lookup(rm, "very_low", 1.2)
	case stress <= 40:
		return lookup(rm, "low", 1.0)
	case stress <= 60:
		return lookup(rm, "medium", 0.85)
	case stress <= 80:
		return lookup(rm, "high", 0.7)
	default:
		return lookup(rm, "very_high", 0.5)
	}
}

// urgencyMultiplier rewards invoices whose discount window is closing. An
// expired window zeroes the invoice's value outright.
func (m *Model) urgencyMultiplier(issueDate time.Time, discountDays int) float64 {
	deadline := issueDate.AddDate(0, 0, discountDays)
	days := int(deadline.Sub(m.clock.Now()) / (24 * time.Hour))
	switch {
	case days <= 0:
		return 0
	case days <= 3:
		return 1.5
	case days <= 7:
		return 1.2
	case days <= 14:
		return 1.1
	default:
		return 1.0
	}
}

func lookup(table map[string]float64, key string, def float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return def
}
