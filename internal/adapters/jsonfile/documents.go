package jsonfile

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"payopti/internal/domain"
)

// Raw document shapes. Optional fields are pointers so absence is
// distinguishable from an explicit zero; defaults are applied exactly once
// in the build functions below.

type vendorDoc struct {
	BasicInfo struct {
		DisplayName string `json:"display_name"`
		Industry    string `json:"industry"`
	} `json:"basic_info"`
	StrategicClassification struct {
		BusinessImpact *string `json:"business_impact"`
	} `json:"strategic_classification"`
	ContractDetails struct {
		AnnualContractValue *float64 `json:"annual_contract_value"`
	} `json:"contract_details"`
	RelationshipMetrics struct {
		YearsAsVendor *float64 `json:"years_as_vendor"`
	} `json:"relationship_metrics"`
	ExternalData struct {
		YearsInBusiness *float64 `json:"years_in_business"`
	} `json:"external_data"`
}

type historyDoc struct {
	TransactionSummary struct {
		TotalInvoices  int `json:"total_invoices"`
		InvoicesOnTime int `json:"invoices_paid_on_time"`
	} `json:"transaction_summary"`
}

type communicationDoc struct {
	EmailMetrics struct {
		FrictionEmails *int `json:"friction_emails"`
	} `json:"email_metrics"`
}

type performanceDoc struct {
	OperationalMetrics struct {
		OnTimeDeliveryRate *float64 `json:"on_time_delivery_rate"`
		QualityScore       float64  `json:"quality_score"`
	} `json:"operational_metrics"`
	RiskIndicators struct {
		FinancialStressScore *float64 `json:"financial_stress_score"`
	} `json:"risk_indicators"`
}

type marketDoc struct {
	MarketPosition  string  `json:"market_position"`
	MarketShare     float64 `json:"market_share"`
	CompetitorCount int     `json:"competitor_count"`
	PriceTrend      string  `json:"price_trend"`
	IndustryGrowth  string  `json:"industry_growth"`
}

type invoicesDoc struct {
	CashConstraints *struct {
		AvailableCash *float64 `json:"available_cash"`
	} `json:"cash_constraints"`
	InvoiceBatch []invoiceDoc `json:"invoice_batch"`
}

type invoiceDoc struct {
	InvoiceID     string  `json:"invoice_id" validate:"required"`
	VendorID      string  `json:"vendor_id" validate:"required"`
	InvoiceAmount float64 `json:"invoice_amount" validate:"required,gt=0"`
	IssueDate     string  `json:"issue_date" validate:"required"`
	DueDate       string  `json:"due_date" validate:"required"`
	PaymentTerms  string  `json:"payment_terms"`
}

type orgConfigDoc struct {
	AvailableModes map[string]modeDoc `json:"available_modes"`
}

type modeDoc struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Weights          map[string]float64 `json:"weights"`
	CashReserveRatio *float64           `json:"cash_reserve_ratio"`
	RiskTolerance    string             `json:"risk_tolerance"`
}

type financialDoc struct {
	WACC              *float64           `json:"wacc"`
	ImpactMultipliers map[string]float64 `json:"business_impact_multipliers"`
	RiskMultipliers   map[string]float64 `json:"risk_multipliers"`
	MarketMultipliers map[string]float64 `json:"market_multipliers"`
}

const dateLayout = "2006-01-02"

var validate = validator.New()

func buildVendor(id string, v vendorDoc, h historyDoc, c communicationDoc, p performanceDoc, m marketDoc) domain.VendorRecord {
	rec := domain.UnknownVendor(id)
	if v.BasicInfo.DisplayName != "" {
		rec.DisplayName = v.BasicInfo.DisplayName
	}
	rec.Industry = v.BasicInfo.Industry
	if v.StrategicClassification.BusinessImpact != nil {
		rec.BusinessImpact = *v.StrategicClassification.BusinessImpact
	}
	if v.ContractDetails.AnnualContractValue != nil {
		rec.AnnualContractValue = *v.ContractDetails.AnnualContractValue
	}
	if v.RelationshipMetrics.YearsAsVendor != nil {
		rec.YearsAsVendor = *v.RelationshipMetrics.YearsAsVendor
	}
	if v.ExternalData.YearsInBusiness != nil {
		rec.YearsInBusiness = *v.ExternalData.YearsInBusiness
	}

	rec.History = domain.PaymentHistory{
		TotalInvoices: h.TransactionSummary.TotalInvoices,
		PaidOnTime:    h.TransactionSummary.InvoicesOnTime,
	}
	if c.EmailMetrics.FrictionEmails != nil {
		rec.Communication.FrictionEmails = *c.EmailMetrics.FrictionEmails
	}
	if p.OperationalMetrics.OnTimeDeliveryRate != nil {
		rec.Performance.OnTimeDeliveryRate = *p.OperationalMetrics.OnTimeDeliveryRate
	}
	rec.Performance.QualityScore = p.OperationalMetrics.QualityScore
	if p.RiskIndicators.FinancialStressScore != nil {
		rec.Performance.FinancialStressScore = *p.RiskIndicators.FinancialStressScore
	}
	rec.Market = domain.MarketSnapshot{
		Position:        m.MarketPosition,
		Share:           m.MarketShare,
		CompetitorCount: m.CompetitorCount,
		PriceTrend:      m.PriceTrend,
		IndustryGrowth:  m.IndustryGrowth,
	}
	return rec
}

func buildInvoice(doc invoiceDoc, index int) (domain.Invoice, error) {
	source := fmt.Sprintf("%s#%d", invoicesFile, index)
	if err := validate.Struct(doc); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return domain.Invoice{}, &domain.ValidationError{
				Source: source,
				Field:  errs[0].Field(),
				Reason: errs[0].Tag(),
			}
		}
		return domain.Invoice{}, err
	}
	issue, err := time.Parse(dateLayout, doc.IssueDate)
	if err != nil {
		return domain.Invoice{}, &domain.ValidationError{Source: source, Field: "issue_date", Reason: err.Error()}
	}
	due, err := time.Parse(dateLayout, doc.DueDate)
	if err != nil {
		return domain.Invoice{}, &domain.ValidationError{Source: source, Field: "due_date", Reason: err.Error()}
	}
	return domain.Invoice{
		InvoiceID:     doc.InvoiceID,
		VendorID:      doc.VendorID,
		InvoiceAmount: doc.InvoiceAmount,
		IssueDate:     issue,
		DueDate:       due,
		RawTerms:      doc.PaymentTerms,
	}, nil
}

func buildMode(key string, m modeDoc) domain.ModeConfig {
	cfg := domain.ModeConfig{
		Key:              key,
		Name:             m.Name,
		Description:      m.Description,
		Weights:          m.Weights,
		CashReserveRatio: 0.20,
		RiskTolerance:    m.RiskTolerance,
	}
	if cfg.Name == "" {
		cfg.Name = key
	}
	if m.CashReserveRatio != nil {
		cfg.CashReserveRatio = *m.CashReserveRatio
	}
	return cfg
}

func applyFinancial(params *domain.FinancialParams, doc financialDoc) {
	if doc.WACC != nil {
		params.WACC = *doc.WACC
	}
	// Partial tables override per key; unnamed tiers keep their defaults.
	for k, v := range doc.ImpactMultipliers {
		params.ImpactMultipliers[k] = v
	}
	for k, v := range doc.RiskMultipliers {
		params.RiskMultipliers[k] = v
	}
	for k, v := range doc.MarketMultipliers {
		params.MarketMultipliers[k] = v
	}
}
