package domain

import "time"

// Core domain records. Boundary adapters validate raw input once and apply
// the documented defaults, so everything below can be assumed complete.

// PaymentTerms is the structured reading of a free-text terms string.
// Immutable after creation.
type PaymentTerms struct {
	PaymentType  string  `json:"payment_type"` // net_term|early_discount|cod|advance_payment|eom
	DiscountRate float64 `json:"discount_rate"`
	DiscountDays int     `json:"discount_days"`
	NetDays      int     `json:"net_days"`
	LateFeeRate  float64 `json:"late_fee_rate"`
	Confidence   float64 `json:"confidence"`
}

// RelationshipScore holds the VRS and its components. Values are nominally
// in [0,100] but the final score is deliberately unclamped: extreme inputs
// can push it outside the range and callers must tolerate that.
type RelationshipScore struct {
	HardFactorsScore   float64 `json:"hard_factors_score"`
	SoftFactorsScore   float64 `json:"soft_factors_score"`
	FinalVRS           float64 `json:"final_vrs"`
	TotalValueScore    float64 `json:"total_value_score"`
	RepaymentScore     float64 `json:"repayment_score"`
	LongevityScore     float64 `json:"longevity_score"`
	ReliabilityScore   float64 `json:"reliability_score"`
	CommunicationScore float64 `json:"communication_score"`
}

// BusinessValue is the ranking key for an invoice: discount benefit net of
// the cost-of-capital opportunity cost, scaled by the multipliers.
type BusinessValue struct {
	NetFinancialBenefit      float64 `json:"net_financial_benefit"`
	BusinessImpactMultiplier float64 `json:"business_impact_multiplier"`
	RelationshipMultiplier   float64 `json:"relationship_multiplier"`
	RiskMultiplier           float64 `json:"risk_multiplier"`
	VRSMultiplier            float64 `json:"vrs_multiplier"`
	UrgencyMultiplier        float64 `json:"urgency_multiplier"`
	MarketMultiplier         float64 `json:"market_multiplier"`
	FinalBusinessValue       float64 `json:"final_business_value"`
}

// Invoice is a read-only input record.
type Invoice struct {
	InvoiceID     string
	VendorID      string
	InvoiceAmount float64
	IssueDate     time.Time
	DueDate       time.Time
	RawTerms      string
}

// VendorRecord is the composite vendor snapshot: profile, payment history,
// operational performance, communication metrics, and market intelligence.
type VendorRecord struct {
	VendorID            string
	DisplayName         string
	Industry            string
	BusinessImpact      string // critical|high|medium|low
	AnnualContractValue float64
	YearsAsVendor       float64
	YearsInBusiness     float64
	History             PaymentHistory
	Performance         OperationalPerformance
	Communication       CommunicationMetrics
	Market              MarketSnapshot
}

type PaymentHistory struct {
	TotalInvoices int
	PaidOnTime    int
}

type OperationalPerformance struct {
	OnTimeDeliveryRate   float64
	QualityScore         float64
	FinancialStressScore float64 // 0-100, higher is more stressed
}

type CommunicationMetrics struct {
	FrictionEmails int
}

type MarketSnapshot struct {
	Position        string // market_leader|major_player|standard|follower
	Share           float64
	CompetitorCount int
	PriceTrend      string
	IndustryGrowth  string
}

// ScoredInvoice joins an invoice with everything computed for it during one
// allocation run. It exists only for the duration of that run.
type ScoredInvoice struct {
	Invoice      Invoice
	VendorName   string
	Terms        PaymentTerms
	Relationship RelationshipScore
	Value        BusinessValue
	Insight      VendorInsight
}

// Payment sequence statuses.
const (
	StatusScheduled = "scheduled"
	StatusDeferred  = "deferred"
)

// PaymentSequenceEntry is the externally visible schedule line.
type PaymentSequenceEntry struct {
	Position         int     `json:"position"`
	VendorID         string  `json:"vendor_id"`
	VendorName       string  `json:"vendor_name"`
	InvoiceID        string  `json:"invoice_id"`
	Amount           float64 `json:"amount"`
	BusinessValue    float64 `json:"business_value"`
	VRSScore         float64 `json:"vrs_score"`
	DiscountRate     float64 `json:"discount_rate"`
	DiscountCaptured float64 `json:"discount_captured"`
	PaymentTiming    string  `json:"payment_timing"` // YYYY-MM-DD
	StrategicImpact  string  `json:"strategic_impact,omitempty"`
	PaymentPriority  string  `json:"payment_priority,omitempty"`
	Status           string  `json:"status"`
	Reasoning        string  `json:"reasoning"`
}

// ModeConfig is a named optimization configuration. Only CashReserveRatio
// affects scheduling; Weights are carried through to reporting untouched.
type ModeConfig struct {
	Key              string             `json:"key"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Weights          map[string]float64 `json:"weights,omitempty"`
	CashReserveRatio float64            `json:"cash_reserve_ratio"`
	RiskTolerance    string             `json:"risk_tolerance"`
}

// FinancialParams are the organization-wide scoring parameters.
type FinancialParams struct {
	WACC              float64            `json:"wacc"`
	ImpactMultipliers map[string]float64 `json:"business_impact_multipliers"`
	RiskMultipliers   map[string]float64 `json:"risk_multipliers"`
	MarketMultipliers map[string]float64 `json:"market_multipliers"`
}

// VendorContext bundles what the narrative collaborator sees for one vendor.
type VendorContext struct {
	Vendor       VendorRecord
	Relationship RelationshipScore
	Value        BusinessValue
}
