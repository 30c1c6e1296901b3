package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"payopti/internal/domain"
)

// Reference documents the store reads. A missing file is not an error; its
// records simply resolve to defaults downstream.
const (
	invoicesFile      = "invoices_input.json"
	vendorsFile       = "vendor_master.json"
	historyFile       = "payment_history.json"
	communicationFile = "communication_logs.json"
	performanceFile   = "performance_metrics.json"
	marketFile        = "market_intelligence.json"
	orgConfigFile     = "organization_config.json"
	financialFile     = "financial_parameters.json"
)

// Store serves read-only reference data loaded from a directory of JSON
// documents. All validation and defaulting happens here, once, so the
// engine can assume complete records.
type Store struct {
	vendors       map[string]domain.VendorRecord
	invoices      []domain.Invoice
	availableCash float64
	modes         map[string]domain.ModeConfig
	params        domain.FinancialParams
}

// Open loads and validates every document under dir. Malformed numeric or
// date input surfaces as a *domain.ValidationError; absent files and
// absent fields never do.
func Open(dir string, log logrus.FieldLogger) (*Store, error) {
	s := &Store{
		vendors: make(map[string]domain.VendorRecord),
		modes:   domain.BuiltinModes(),
		params:  domain.DefaultFinancialParams(),
	}

	var vendors map[string]vendorDoc
	if err := loadDoc(dir, vendorsFile, &vendors, log); err != nil {
		return nil, err
	}
	var history map[string]historyDoc
	if err := loadDoc(dir, historyFile, &history, log); err != nil {
		return nil, err
	}
	var communication map[string]communicationDoc
	if err := loadDoc(dir, communicationFile, &communication, log); err != nil {
		return nil, err
	}
	var performance map[string]performanceDoc
	if err := loadDoc(dir, performanceFile, &performance, log); err != nil {
		return nil, err
	}
	var market map[string]marketDoc
	if err := loadDoc(dir, marketFile, &market, log); err != nil {
		return nil, err
	}
	for id, doc := range vendors {
		s.vendors[id] = buildVendor(id, doc, history[id], communication[id], performance[id], market[id])
	}

	var invoices invoicesDoc
	if err := loadDoc(dir, invoicesFile, &invoices, log); err != nil {
		return nil, err
	}
	s.availableCash = domain.DefaultAvailableCash
	if invoices.CashConstraints != nil && invoices.CashConstraints.AvailableCash != nil {
		s.availableCash = *invoices.CashConstraints.AvailableCash
	}
	for i, raw := range invoices.InvoiceBatch {
		inv, err := buildInvoice(raw, i)
		if err != nil {
			return nil, err
		}
		s.invoices = append(s.invoices, inv)
	}

	var org orgConfigDoc
	if err := loadDoc(dir, orgConfigFile, &org, log); err != nil {
		return nil, err
	}
	if len(org.AvailableModes) > 0 {
		s.modes = make(map[string]domain.ModeConfig, len(org.AvailableModes))
		for key, m := range org.AvailableModes {
			s.modes[key] = buildMode(key, m)
		}
	}

	var fin financialDoc
	if err := loadDoc(dir, financialFile, &fin, log); err != nil {
		return nil, err
	}
	applyFinancial(&s.params, fin)

	return s, nil
}

func loadDoc(dir, name string, out any, log logrus.FieldLogger) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.WithField("file", name).Warn("reference document missing, using defaults")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.ValidationError{Source: name, Field: "document", Reason: err.Error()}
	}
	return nil
}

// VendorRepository

func (s *Store) Vendor(_ context.Context, vendorID string) (domain.VendorRecord, bool, error) {
	v, ok := s.vendors[vendorID]
	return v, ok, nil
}

func (s *Store) AnnualSpends(_ context.Context) ([]float64, error) {
	spends := make([]float64, 0, len(s.vendors))
	for _, v := range s.vendors {
		spends = append(spends, v.AnnualContractValue)
	}
	return spends, nil
}

// InvoiceRepository

func (s *Store) Batch(_ context.Context) ([]domain.Invoice, error) {
	return s.invoices, nil
}

func (s *Store) AvailableCash(_ context.Context) (float64, error) {
	return s.availableCash, nil
}

// ConfigRepository

func (s *Store) Mode(_ context.Context, name string) (domain.ModeConfig, bool, error) {
	m, ok := s.modes[name]
	return m, ok, nil
}

func (s *Store) FinancialParams(_ context.Context) (domain.FinancialParams, error) {
	return s.params, nil
}
