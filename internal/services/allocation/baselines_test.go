package allocation_test

import (
	"testing"

	"payopti/internal/domain"
	"payopti/internal/services/allocation"
)

func TestAvalanche_OrdersByDiscountRate(t *testing.T) {
	scored := []domain.ScoredInvoice{
		scoredInvoice("small", 50_000, 0, 60, 2), // 1000 discount
		scoredInvoice("big", 60_000, 0, 60, 5),   // 3000 discount
	}
	// 100k available, fixed 20% reserve leaves 80k: only one fits.
	got := allocation.Avalanche(scored, 100_000)
	if got.VendorsPaid != 1 {
		t.Fatalf("vendors paid = %d, want 1", got.VendorsPaid)
	}
	if got.TotalSavings != 3000 {
		t.Errorf("savings = %v, want 3000 (highest rate first)", got.TotalSavings)
	}
	if got.Method != "Avalanche Method" {
		t.Errorf("method = %q", got.Method)
	}
}

func TestSnowball_OrdersByAmount(t *testing.T) {
	scored := []domain.ScoredInvoice{
		scoredInvoice("big", 60_000, 0, 60, 5),
		scoredInvoice("small", 50_000, 0, 60, 2),
	}
	got := allocation.Snowball(scored, 100_000)
	if got.VendorsPaid != 1 {
		t.Fatalf("vendors paid = %d, want 1", got.VendorsPaid)
	}
	if got.TotalSavings != 1000 {
		t.Errorf("savings = %v, want 1000 (smallest amount first)", got.TotalSavings)
	}
}

func TestBaselines_SkipAndContinue(t *testing.T) {
	// Unlike the greedy allocator the baselines skip what does not fit and
	// keep going, so a later smaller invoice can still be admitted.
	scored := []domain.ScoredInvoice{
		scoredInvoice("huge", 90_000, 0, 60, 9),
		scoredInvoice("tiny", 10_000, 0, 60, 1),
	}
	got := allocation.Avalanche(scored, 100_000) // usable 80k
	if got.VendorsPaid != 1 || got.TotalSavings != 100 {
		t.Errorf("got %d paid, %v savings; want the tiny invoice admitted", got.VendorsPaid, got.TotalSavings)
	}
}

func TestBaselines_SumNetBenefitOnly(t *testing.T) {
	si := scoredInvoice("A", 10_000, 99_999, 60, 2)
	got := allocation.Snowball([]domain.ScoredInvoice{si}, 100_000)
	if got.BusinessValue != si.Value.NetFinancialBenefit {
		t.Errorf("business value = %v, want the bare net benefit %v", got.BusinessValue, si.Value.NetFinancialBenefit)
	}
	if got.AverageVRS != 0 {
		t.Errorf("average VRS = %v, baselines do not track it", got.AverageVRS)
	}
}

func TestSummarize(t *testing.T) {
	scored := []domain.ScoredInvoice{
		scoredInvoice("A", 100_000, 3000, 90, 2),
		scoredInvoice("B", 50_000, 2000, 70, 2),
		scoredInvoice("C", 200_000, 1000, 60, 2),
	}
	sequence := allocation.Allocate(scored, 160_000) // A and B fit, C deferred
	s := allocation.Summarize(sequence)

	if s.TotalPayables != 350_000 {
		t.Errorf("total payables = %v, want 350000", s.TotalPayables)
	}
	if s.ScheduledCount != 2 || s.DeferredCount != 1 {
		t.Errorf("scheduled/deferred = %d/%d, want 2/1", s.ScheduledCount, s.DeferredCount)
	}
	if s.TotalSavings != 3000 { // 2000 + 1000 captured
		t.Errorf("total savings = %v, want 3000", s.TotalSavings)
	}
	if s.ActiveVendors != 3 {
		t.Errorf("active vendors = %d, want 3", s.ActiveVendors)
	}
	if s.AverageVRS != 80 { // (90+70)/2 over scheduled only
		t.Errorf("average VRS = %v, want 80", s.AverageVRS)
	}
	if s.StrategicVendors != 1 { // only A is above 85
		t.Errorf("strategic vendors = %d, want 1", s.StrategicVendors)
	}
}

func TestCompare_ImprovementAgainstBestBaseline(t *testing.T) {
	scored := []domain.ScoredInvoice{
		scoredInvoice("A", 100_000, 5000, 80, 3),
		scoredInvoice("B", 50_000, 1000, 60, 1),
	}
	availableCash := 150_000.0
	sequence := allocation.Allocate(scored, allocation.UsableCash(availableCash, 0.20)) // 120k: A only
	got := allocation.Compare(sequence, scored, availableCash)

	if got.Optimized.Method != "Multi-Objective Business Value" {
		t.Errorf("optimized method = %q", got.Optimized.Method)
	}
	if got.Optimized.TotalSavings != 3000 {
		t.Errorf("optimized savings = %v, want 3000", got.Optimized.TotalSavings)
	}
	// Baselines also run at 120k usable: both pick A only.
	if got.Avalanche.TotalSavings != 3000 {
		t.Errorf("avalanche savings = %v, want 3000", got.Avalanche.TotalSavings)
	}
	wantAdvantage := got.Optimized.BusinessValue - got.Avalanche.BusinessValue
	if got.Snowball.BusinessValue > got.Avalanche.BusinessValue {
		wantAdvantage = got.Optimized.BusinessValue - got.Snowball.BusinessValue
	}
	if got.Improvement.BusinessValueAdvantage != wantAdvantage {
		t.Errorf("advantage = %v, want %v", got.Improvement.BusinessValueAdvantage, wantAdvantage)
	}
}
