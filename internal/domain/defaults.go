package domain

// Documented defaults for absent boundary data. Absence never raises; it
// resolves to these values.
const (
	DefaultYearsInBusiness      = 5.0
	DefaultYearsAsVendor        = 1.0
	DefaultDeliveryRate         = 85.0
	DefaultFrictionEmails       = 5
	DefaultFinancialStress      = 50.0
	DefaultBusinessImpact       = "medium"
	DefaultAvailableCash        = 2_500_000.0
	DefaultWACC                 = 0.08
	DefaultNetDays              = 30
	FallbackParseConfidence     = 0.7
	AssistedParseConfidence     = 0.8
	NeutralPercentile           = 50.0
	NeutralRepaymentScore       = 50.0
)

const DefaultModeKey = "balanced"

// UnknownVendor is the snapshot used when an invoice references a vendor the
// master data does not know. Every field sits at its neutral default.
func UnknownVendor(vendorID string) VendorRecord {
	return VendorRecord{
		VendorID:        vendorID,
		DisplayName:     "Unknown",
		BusinessImpact:  DefaultBusinessImpact,
		YearsAsVendor:   DefaultYearsAsVendor,
		YearsInBusiness: DefaultYearsInBusiness,
		Performance: OperationalPerformance{
			OnTimeDeliveryRate:   DefaultDeliveryRate,
			FinancialStressScore: DefaultFinancialStress,
		},
		Communication: CommunicationMetrics{FrictionEmails: DefaultFrictionEmails},
	}
}

// DefaultFinancialParams mirrors the fallback tables used when the
// financial_parameters document is absent or partial.
func DefaultFinancialParams() FinancialParams {
	return FinancialParams{
		WACC: DefaultWACC,
		ImpactMultipliers: map[string]float64{
			"critical": 3.0,
			"high":     2.0,
			"medium":   1.5,
			"low":      1.0,
		},
		RiskMultipliers: map[string]float64{
			"very_low":  1.2,
			"low":       1.0,
			"medium":    0.85,
			"high":      0.7,
			"very_high": 0.5,
		},
		MarketMultipliers: map[string]float64{
			"market_leader": 1.2,
			"major_player":  1.1,
			"standard":      1.0,
			"follower":      0.9,
		},
	}
}

// BuiltinModes is the mode set used when the organization configuration
// supplies none.
func BuiltinModes() map[string]ModeConfig {
	return map[string]ModeConfig{
		"balanced": {
			Key:              "balanced",
			Name:             "Balanced",
			Description:      "Even weighting of savings, relationships, and risk",
			CashReserveRatio: 0.20,
			RiskTolerance:    "medium",
		},
		"ipo_preparation": {
			Key:              "ipo_preparation",
			Name:             "IPO Preparation",
			Description:      "Preserve cash and clean vendor standing ahead of listing",
			CashReserveRatio: 0.35,
			RiskTolerance:    "low",
		},
		"crisis_management": {
			Key:              "crisis_management",
			Name:             "Crisis Management",
			Description:      "Maximum reserve, pay only the highest-value invoices",
			CashReserveRatio: 0.50,
			RiskTolerance:    "very_low",
		},
		"growth_expansion": {
			Key:              "growth_expansion",
			Name:             "Growth Expansion",
			Description:      "Deploy cash aggressively to capture discounts",
			CashReserveRatio: 0.15,
			RiskTolerance:    "high",
		},
		"conservative_risk": {
			Key:              "conservative_risk",
			Name:             "Conservative Risk",
			Description:      "High reserve with relationship preservation",
			CashReserveRatio: 0.40,
			RiskTolerance:    "low",
		},
	}
}
