package optimizer

import "payopti/internal/domain"

// VRS bands for vendor categorization.
const (
	strategicPartnerVRS = 85.0
	keySupplierVRS      = 70.0
	standardVendorVRS   = 55.0
)

func categorize(scored []domain.ScoredInvoice) domain.VendorAnalysis {
	va := domain.VendorAnalysis{}
	for _, si := range scored {
		snap := domain.VendorSnapshot{
			VendorID:       si.Invoice.VendorID,
			VendorName:     si.VendorName,
			VRSScore:       si.Relationship.FinalVRS,
			BusinessValue:  si.Value.FinalBusinessValue,
			Classification: si.Insight.VendorClassification,
			StrategicValue: si.Insight.Relationship.StrategicValue,
			RiskLevel:      si.Insight.Risk.Overall,
		}

		switch {
		case snap.VRSScore >= strategicPartnerVRS:
			va.StrategicPartners = append(va.StrategicPartners, snap)
		case snap.VRSScore >= keySupplierVRS:
			va.KeySuppliers = append(va.KeySuppliers, snap)
		case snap.VRSScore >= standardVendorVRS:
			va.StandardVendors = append(va.StandardVendors, snap)
		default:
			va.CommoditySuppliers = append(va.CommoditySuppliers, snap)
		}

		switch snap.RiskLevel {
		case "low":
			va.Risk.Low = append(va.Risk.Low, snap)
		case "high":
			va.Risk.High = append(va.Risk.High, snap)
		default:
			va.Risk.Medium = append(va.Risk.Medium, snap)
		}
	}
	return va
}

// negotiationPlans keeps the collaborator's negotiation payload for vendors
// worth negotiating with (VRS above the key-supplier band).
func negotiationPlans(scored []domain.ScoredInvoice) map[string]domain.NegotiationPlan {
	plans := make(map[string]domain.NegotiationPlan)
	for _, si := range scored {
		if si.Relationship.FinalVRS <= keySupplierVRS {
			continue
		}
		plans[si.Invoice.VendorID] = domain.NegotiationPlan{
			VendorName:      si.VendorName,
			VRSScore:        si.Relationship.FinalVRS,
			BusinessValue:   si.Value.FinalBusinessValue,
			Strategy:        si.Insight.Negotiation,
			Insights:        si.Insight.Relationship,
			Recommendations: si.Insight.Recommendations,
		}
	}
	return plans
}
