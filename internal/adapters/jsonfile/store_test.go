package jsonfile_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"payopti/internal/adapters/jsonfile"
	"payopti/internal/domain"
)

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpen_EmptyDirUsesDefaults(t *testing.T) {
	store, err := jsonfile.Open(t.TempDir(), quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	ctx := context.Background()

	cash, err := store.AvailableCash(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cash != 2_500_000 {
		t.Errorf("available cash = %v, want the 2.5M default", cash)
	}

	mode, found, err := store.Mode(ctx, "balanced")
	if err != nil || !found {
		t.Fatalf("balanced mode: found=%v err=%v", found, err)
	}
	if mode.CashReserveRatio != 0.20 {
		t.Errorf("reserve ratio = %v, want 0.20", mode.CashReserveRatio)
	}

	params, err := store.FinancialParams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if params.WACC != 0.08 {
		t.Errorf("wacc = %v, want 0.08", params.WACC)
	}

	_, found, err = store.Vendor(ctx, "V001")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("no vendor master loaded, lookup should miss")
	}
}

func TestOpen_VendorMergedAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "vendor_master.json", `{
        "V001": {
            "basic_info": {"display_name": "Acme Materials", "industry": "manufacturing"},
            "strategic_classification": {"business_impact": "critical"},
            "contract_details": {"annual_contract_value": 900000},
            "relationship_metrics": {"years_as_vendor": 8},
            "external_data": {"years_in_business": 20}
        }
    }`)
	writeDoc(t, dir, "payment_history.json", `{
        "V001": {"transaction_summary": {"total_invoices": 40, "invoices_paid_on_time": 39}}
    }`)
	writeDoc(t, dir, "communication_logs.json", `{
        "V001": {"email_metrics": {"friction_emails": 2}}
    }`)
	writeDoc(t, dir, "performance_metrics.json", `{
        "V001": {
            "operational_metrics": {"on_time_delivery_rate": 97.5, "quality_score": 92},
            "risk_indicators": {"financial_stress_score": 15}
        }
    }`)
	writeDoc(t, dir, "market_intelligence.json", `{
        "V001": {"market_position": "market_leader", "market_share": 0.34, "competitor_count": 3}
    }`)

	store, err := jsonfile.Open(dir, quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	v, found, err := store.Vendor(context.Background(), "V001")
	if err != nil || !found {
		t.Fatalf("vendor lookup: found=%v err=%v", found, err)
	}
	if v.DisplayName != "Acme Materials" || v.BusinessImpact != "critical" {
		t.Errorf("vendor basics = %q/%q", v.DisplayName, v.BusinessImpact)
	}
	if v.History.TotalInvoices != 40 || v.History.PaidOnTime != 39 {
		t.Errorf("history = %+v", v.History)
	}
	if v.Communication.FrictionEmails != 2 {
		t.Errorf("friction emails = %d", v.Communication.FrictionEmails)
	}
	if v.Performance.OnTimeDeliveryRate != 97.5 || v.Performance.FinancialStressScore != 15 {
		t.Errorf("performance = %+v", v.Performance)
	}
	if v.Market.Position != "market_leader" || v.Market.CompetitorCount != 3 {
		t.Errorf("market = %+v", v.Market)
	}

	spends, err := store.AnnualSpends(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(spends) != 1 || spends[0] != 900_000 {
		t.Errorf("spends = %v", spends)
	}
}

func TestOpen_VendorMissingFieldsDefault(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "vendor_master.json", `{"V002": {"basic_info": {"display_name": "Sparse Co"}}}`)

	store, err := jsonfile.Open(dir, quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	v, _, _ := store.Vendor(context.Background(), "V002")
	if v.YearsInBusiness != 5 || v.YearsAsVendor != 1 {
		t.Errorf("tenure defaults = %v/%v, want 5/1", v.YearsInBusiness, v.YearsAsVendor)
	}
	if v.Performance.OnTimeDeliveryRate != 85 {
		t.Errorf("delivery default = %v, want 85", v.Performance.OnTimeDeliveryRate)
	}
	if v.Performance.FinancialStressScore != 50 {
		t.Errorf("stress default = %v, want 50", v.Performance.FinancialStressScore)
	}
	if v.Communication.FrictionEmails != 5 {
		t.Errorf("friction default = %v, want 5", v.Communication.FrictionEmails)
	}
	if v.BusinessImpact != "medium" {
		t.Errorf("impact default = %q, want medium", v.BusinessImpact)
	}
}

func TestOpen_InvoiceBatch(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "invoices_input.json", `{
        "cash_constraints": {"available_cash": 750000},
        "invoice_batch": [
            {"invoice_id": "INV-001", "vendor_id": "V001", "invoice_amount": 100000,
             "issue_date": "2026-03-01", "due_date": "2026-03-31", "payment_terms": "2/10 net 30"}
        ]
    }`)

	store, err := jsonfile.Open(dir, quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	cash, _ := store.AvailableCash(context.Background())
	if cash != 750_000 {
		t.Errorf("available cash = %v, want 750000", cash)
	}
	batch, err := store.Batch(context.Background())
	if err != nil || len(batch) != 1 {
		t.Fatalf("batch = %v, err=%v", batch, err)
	}
	inv := batch[0]
	if inv.InvoiceID != "INV-001" || inv.RawTerms != "2/10 net 30" {
		t.Errorf("invoice = %+v", inv)
	}
	if inv.IssueDate.Format("2006-01-02") != "2026-03-01" {
		t.Errorf("issue date = %v", inv.IssueDate)
	}
}

func TestOpen_InvalidAmountIsValidationError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "invoices_input.json", `{
        "invoice_batch": [
            {"invoice_id": "INV-001", "vendor_id": "V001", "invoice_amount": -5,
             "issue_date": "2026-03-01", "due_date": "2026-03-31"}
        ]
    }`)

	_, err := jsonfile.Open(dir, quietLog())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
}

func TestOpen_InvalidDateIsValidationError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "invoices_input.json", `{
        "invoice_batch": [
            {"invoice_id": "INV-001", "vendor_id": "V001", "invoice_amount": 100,
             "issue_date": "03/01/2026", "due_date": "2026-03-31"}
        ]
    }`)

	_, err := jsonfile.Open(dir, quietLog())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if verr.Field != "issue_date" {
		t.Errorf("field = %q, want issue_date", verr.Field)
	}
}

func TestOpen_MalformedDocumentIsValidationError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "vendor_master.json", `{not json`)

	_, err := jsonfile.Open(dir, quietLog())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
}

func TestOpen_OrgConfigReplacesModeSet(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "organization_config.json", `{
        "available_modes": {
            "wartime": {"name": "Wartime", "cash_reserve_ratio": 0.6, "risk_tolerance": "very_low"}
        }
    }`)

	store, err := jsonfile.Open(dir, quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	ctx := context.Background()
	mode, found, _ := store.Mode(ctx, "wartime")
	if !found || mode.CashReserveRatio != 0.6 {
		t.Errorf("wartime mode: found=%v cfg=%+v", found, mode)
	}
	// The configured set replaces the builtin one entirely.
	if _, found, _ := store.Mode(ctx, "balanced"); found {
		t.Error("builtin mode should be gone once the organization defines its own set")
	}
}

func TestOpen_FinancialOverridesMergePerKey(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "financial_parameters.json", `{
        "wacc": 0.12,
        "business_impact_multipliers": {"critical": 4.0}
    }`)

	store, err := jsonfile.Open(dir, quietLog())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	params, _ := store.FinancialParams(context.Background())
	if params.WACC != 0.12 {
		t.Errorf("wacc = %v, want 0.12", params.WACC)
	}
	if params.ImpactMultipliers["critical"] != 4.0 {
		t.Errorf("critical multiplier = %v, want the override", params.ImpactMultipliers["critical"])
	}
	if params.ImpactMultipliers["medium"] != 1.5 {
		t.Errorf("medium multiplier = %v, want the untouched default", params.ImpactMultipliers["medium"])
	}
}
