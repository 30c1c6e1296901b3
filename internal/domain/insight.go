package domain

// VendorInsight is the structured contract with the narrative collaborator.
// The engine itself only reads VendorClassification and PaymentPriority; the
// rest is carried through to reporting. A structurally valid default record
// is substitutable everywhere, so allocation never blocks on this being
// well-formed.
type VendorInsight struct {
	VendorClassification string               `json:"vendor_classification"`
	PaymentPriority      string               `json:"payment_priority"`
	Negotiation          NegotiationStrategy  `json:"negotiation_strategy"`
	Relationship         RelationshipInsights `json:"relationship_insights"`
	Risk                 RiskAssessment       `json:"risk_assessment"`
	Recommendations      []string             `json:"optimization_recommendations"`
	FallbackUsed         bool                 `json:"fallback_used,omitempty"`
}

type NegotiationStrategy struct {
	Approach           string   `json:"approach"`
	SuccessProbability float64  `json:"success_probability"`
	LeveragePoints     []string `json:"key_leverage_points"`
	Goals              []string `json:"negotiation_goals"`
	DraftEmail         string   `json:"draft_email"`
}

type RelationshipInsights struct {
	Strengths        []string `json:"strengths"`
	ImprovementAreas []string `json:"improvement_areas"`
	Trajectory       string   `json:"relationship_trajectory"`
	StrategicValue   string   `json:"strategic_value"`
}

type RiskAssessment struct {
	Overall      string `json:"overall_risk"`
	Financial    string `json:"financial_risk"`
	Operational  string `json:"operational_risk"`
	Relationship string `json:"relationship_risk"`
}

// DefaultInsight is the neutral substitute used whenever the collaborator is
// unavailable or returns something unusable.
func DefaultInsight() VendorInsight {
	return VendorInsight{
		VendorClassification: "standard_vendor",
		PaymentPriority:      "medium",
		Negotiation: NegotiationStrategy{
			Approach:           "collaborative",
			SuccessProbability: 0.65,
			LeveragePoints:     []string{"Standard business relationship"},
			Goals:              []string{"Maintain current terms"},
			DraftEmail:         "Standard negotiation approach",
		},
		Relationship: RelationshipInsights{
			Strengths:        []string{"Established relationship"},
			ImprovementAreas: []string{"Performance optimization"},
			Trajectory:       "stable",
			StrategicValue:   "medium",
		},
		Risk: RiskAssessment{
			Overall:      "medium",
			Financial:    "medium",
			Operational:  "medium",
			Relationship: "medium",
		},
		Recommendations: []string{"Standard optimization approach"},
		FallbackUsed:    true,
	}
}

// StrategicInsight is the high-VRS variant of the fallback analysis.
func StrategicInsight() VendorInsight {
	return VendorInsight{
		VendorClassification: "strategic_partner",
		PaymentPriority:      "immediate",
		Negotiation: NegotiationStrategy{
			Approach:           "partnership",
			SuccessProbability: 0.88,
			LeveragePoints:     []string{"Strong relationship history", "High strategic value"},
			Goals:              []string{"Extended terms", "Enhanced discounts"},
			DraftEmail:         "Partnership enhancement email for high-VRS vendor",
		},
		Relationship: RelationshipInsights{
			Strengths:        []string{"Excellent performance", "Strong partnership"},
			ImprovementAreas: []string{"Volume optimization"},
			Trajectory:       "strengthening",
			StrategicValue:   "critical",
		},
		Risk: RiskAssessment{
			Overall:      "low",
			Financial:    "low",
			Operational:  "low",
			Relationship: "low",
		},
		Recommendations: []string{"Enhance partnership terms", "Explore volume discounts"},
		FallbackUsed:    true,
	}
}
