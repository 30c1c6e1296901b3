package allocation

import (
	"fmt"
	"sort"

	"payopti/internal/domain"
)

const dateLayout = "2006-01-02"

// Allocate admits invoices against usableCash in descending business-value
// order (stable; ties keep input order) and produces the payment sequence.
// Single greedy pass: once an invoice is deferred it is never revisited,
// even if a later smaller invoice leaves enough cash behind.
func Allocate(scored []domain.ScoredInvoice, usableCash float64) []domain.PaymentSequenceEntry {
	ordered := make([]domain.ScoredInvoice, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Value.FinalBusinessValue > ordered[j].Value.FinalBusinessValue
	})

	sequence := make([]domain.PaymentSequenceEntry, 0, len(ordered))
	remaining := usableCash
	for i, si := range ordered {
		amount := si.Invoice.InvoiceAmount
		entry := domain.PaymentSequenceEntry{
			Position:      i + 1,
			VendorID:      si.Invoice.VendorID,
			VendorName:    si.VendorName,
			InvoiceID:     si.Invoice.InvoiceID,
			Amount:        amount,
			BusinessValue: si.Value.FinalBusinessValue,
			VRSScore:      si.Relationship.FinalVRS,
			DiscountRate:  si.Terms.DiscountRate,
		}
		if remaining >= amount {
			entry.Status = domain.StatusScheduled
			entry.DiscountCaptured = amount * si.Terms.DiscountRate / 100
			// Pay the day before the discount window closes.
			entry.PaymentTiming = si.Invoice.IssueDate.AddDate(0, 0, si.Terms.DiscountDays-1).Format(dateLayout)
			entry.StrategicImpact = si.Insight.VendorClassification
			entry.PaymentPriority = si.Insight.PaymentPriority
			entry.Reasoning = fmt.Sprintf("Business value: $%.0f, VRS: %.1f, Classification: %s",
				si.Value.FinalBusinessValue, si.Relationship.FinalVRS, si.Insight.VendorClassification)
			remaining -= amount
		} else {
			entry.Status = domain.StatusDeferred
			entry.PaymentTiming = si.Invoice.DueDate.Format(dateLayout)
			entry.Reasoning = fmt.Sprintf("Deferred - insufficient cash. Required: $%.0f, Available: $%.0f",
				amount, remaining)
		}
		sequence = append(sequence, entry)
	}
	return sequence
}

// UsableCash applies the mode's reserve to the available balance.
func UsableCash(availableCash, reserveRatio float64) float64 {
	return availableCash * (1 - reserveRatio)
}
