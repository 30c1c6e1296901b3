package domain

import "time"

// RunResult is the full output of one optimization run.
type RunResult struct {
	PaymentSequence []PaymentSequenceEntry     `json:"payment_sequence"`
	VendorAnalysis  VendorAnalysis             `json:"vendor_analysis"`
	Negotiations    map[string]NegotiationPlan `json:"negotiation_strategies"`
	Comparison      ComparisonAnalysis         `json:"comparison_analysis"`
	Summary         RunSummary                 `json:"executive_summary"`
	Mode            ModeReport                 `json:"mode_configuration"`
	Metadata        RunMetadata                `json:"processing_metadata"`
}

// RunSummary holds the top-level dashboard aggregates.
type RunSummary struct {
	TotalPayables    float64 `json:"total_payables"`
	TotalSavings     float64 `json:"potential_savings"`
	SavingsRate      float64 `json:"savings_rate"`
	ActiveVendors    int     `json:"active_vendors"`
	ScheduledCount   int     `json:"scheduled_payments"`
	DeferredCount    int     `json:"deferred_payments"`
	AverageVRS       float64 `json:"average_vrs_score"`
	StrategicVendors int     `json:"strategic_vendors_preserved"`
}

// ModeReport echoes the configuration a run was executed under.
type ModeReport struct {
	ModeUsed    string             `json:"mode_used"`
	ModeName    string             `json:"mode_name"`
	Description string             `json:"mode_description"`
	Weights     map[string]float64 `json:"optimization_weights,omitempty"`
	Cash        CashBreakdown      `json:"cash_constraints"`
}

type CashBreakdown struct {
	AvailableCash  float64 `json:"available_cash"`
	MinimumReserve float64 `json:"minimum_reserve"`
	UsableCash     float64 `json:"usable_cash"`
	ReserveRatio   float64 `json:"reserve_ratio"`
}

type RunMetadata struct {
	InvoicesProcessed int       `json:"invoices_processed"`
	VendorsAnalyzed   int       `json:"vendors_analyzed"`
	ProcessedAt       time.Time `json:"processing_timestamp"`
	TotalAmount       float64   `json:"total_amount"`
	TotalSavings      float64   `json:"total_savings"`
}

// BaselineResult reports one admission strategy over the shared budget.
type BaselineResult struct {
	Method        string  `json:"method"`
	TotalSavings  float64 `json:"total_savings"`
	BusinessValue float64 `json:"business_value"`
	VendorsPaid   int     `json:"vendors_paid"`
	AverageVRS    float64 `json:"average_vrs"`
}

type ComparisonAnalysis struct {
	Optimized   BaselineResult      `json:"optimized"`
	Avalanche   BaselineResult      `json:"avalanche"`
	Snowball    BaselineResult      `json:"snowball"`
	Improvement ImprovementAnalysis `json:"improvement_analysis"`
}

type ImprovementAnalysis struct {
	SavingsVsAvalanche     float64 `json:"savings_vs_avalanche"`
	SavingsVsSnowball      float64 `json:"savings_vs_snowball"`
	BusinessValueAdvantage float64 `json:"business_value_advantage"`
}

// VendorAnalysis categorizes scored vendors by VRS band and risk level.
type VendorAnalysis struct {
	StrategicPartners  []VendorSnapshot `json:"strategic_partners"`
	KeySuppliers       []VendorSnapshot `json:"key_suppliers"`
	StandardVendors    []VendorSnapshot `json:"standard_vendors"`
	CommoditySuppliers []VendorSnapshot `json:"commodity_suppliers"`
	Risk               RiskBuckets      `json:"risk_analysis"`
}

type RiskBuckets struct {
	Low    []VendorSnapshot `json:"low_risk"`
	Medium []VendorSnapshot `json:"medium_risk"`
	High   []VendorSnapshot `json:"high_risk"`
}

type VendorSnapshot struct {
	VendorID       string  `json:"vendor_id"`
	VendorName     string  `json:"vendor_name"`
	VRSScore       float64 `json:"vrs_score"`
	BusinessValue  float64 `json:"business_value"`
	Classification string  `json:"classification"`
	StrategicValue string  `json:"strategic_impact"`
	RiskLevel      string  `json:"risk_level"`
}

// NegotiationPlan is produced for vendors with VRS above 70.
type NegotiationPlan struct {
	VendorName      string               `json:"vendor_name"`
	VRSScore        float64              `json:"vrs_score"`
	BusinessValue   float64              `json:"business_value"`
	Strategy        NegotiationStrategy  `json:"negotiation_strategy"`
	Insights        RelationshipInsights `json:"relationship_insights"`
	Recommendations []string             `json:"optimization_recommendations"`
}

// Mode comparison output.

type ModeComparison struct {
	ModeResults map[string]ModeOutcome `json:"mode_results"`
	Comparative ComparativeAnalysis    `json:"comparative_analysis"`
	Processing  ComparisonMetadata     `json:"processing_summary"`
}

// ModeOutcome records success or failure per mode; one failed mode never
// aborts the batch.
type ModeOutcome struct {
	Status string     `json:"status"` // success|failed
	Error  string     `json:"error,omitempty"`
	Result *RunResult `json:"results,omitempty"`
}

type ComparativeAnalysis struct {
	Modes           map[string]ModeMetrics `json:"mode_comparison"`
	BestPerformers  BestPerformers         `json:"best_performers"`
	Recommendations []string               `json:"recommendations"`
}

type ModeMetrics struct {
	ModeName         string  `json:"mode_name"`
	TotalSavings     float64 `json:"total_savings"`
	SavingsRate      float64 `json:"savings_rate"`
	VendorsScheduled int     `json:"vendors_scheduled"`
	AverageVRS       float64 `json:"average_vrs"`
	ReserveRatio     float64 `json:"cash_reserve_ratio"`
}

type BestPerformers struct {
	HighestSavings ModePick `json:"highest_savings"`
	HighestVRS     ModePick `json:"highest_vrs"`
}

type ModePick struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

type ComparisonMetadata struct {
	ModesRequested  int       `json:"modes_requested"`
	ModesSuccessful int       `json:"modes_successful"`
	ModesFailed     int       `json:"modes_failed"`
	ProcessedAt     time.Time `json:"processing_timestamp"`
}
