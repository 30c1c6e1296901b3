package allocation

import (
	"sort"

	"payopti/internal/domain"
)

// baselineReserveRatio is fixed regardless of the mode under test. The
// baselines model unsophisticated human heuristics, not mode-aware
// policies, so they always run against the default 20% reserve.
const baselineReserveRatio = 0.20

// Avalanche reruns the admission loop with invoices ordered by discount
// rate descending.
func Avalanche(scored []domain.ScoredInvoice, availableCash float64) domain.BaselineResult {
	ordered := make([]domain.ScoredInvoice, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Terms.DiscountRate > ordered[j].Terms.DiscountRate
	})
	return runBaseline(ordered, availableCash, "Avalanche Method")
}

// Snowball reruns the admission loop with invoices ordered by amount
// ascending.
func Snowball(scored []domain.ScoredInvoice, availableCash float64) domain.BaselineResult {
	ordered := make([]domain.ScoredInvoice, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Invoice.InvoiceAmount < ordered[j].Invoice.InvoiceAmount
	})
	return runBaseline(ordered, availableCash, "Snowball Method")
}

func runBaseline(ordered []domain.ScoredInvoice, availableCash float64, method string) domain.BaselineResult {
	remaining := UsableCash(availableCash, baselineReserveRatio)
	out := domain.BaselineResult{Method: method}
	for _, si := range ordered {
		amount := si.Invoice.InvoiceAmount
		if remaining < amount {
			continue
		}
		out.TotalSavings += amount * si.Terms.DiscountRate / 100
		// Financial component only; the heuristics know nothing of the
		// multiplier stack.
		out.BusinessValue += si.Value.NetFinancialBenefit
		out.VendorsPaid++
		remaining -= amount
	}
	return out
}
