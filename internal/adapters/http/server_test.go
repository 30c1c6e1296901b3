package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	httpadapter "payopti/internal/adapters/http"
	"payopti/internal/domain"
	profilesvc "payopti/internal/services/profiles"
)

type stubOptimizer struct {
	result domain.RunResult
	err    error
	mode   string
}

func (s *stubOptimizer) Run(_ context.Context, mode string) (domain.RunResult, error) {
	s.mode = mode
	return s.result, s.err
}

func (s *stubOptimizer) Compare(_ context.Context, modes []string) (domain.ModeComparison, error) {
	if s.err != nil {
		return domain.ModeComparison{}, s.err
	}
	return domain.ModeComparison{Processing: domain.ComparisonMetadata{ModesRequested: len(modes)}}, nil
}

type stubVendors struct {
	vendors map[string]domain.VendorRecord
}

func (s stubVendors) Vendor(_ context.Context, id string) (domain.VendorRecord, bool, error) {
	v, ok := s.vendors[id]
	return v, ok, nil
}

func (s stubVendors) AnnualSpends(_ context.Context) ([]float64, error) { return nil, nil }

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(opt *stubOptimizer) *httptest.Server {
	vendors := stubVendors{vendors: map[string]domain.VendorRecord{
		"V001": {VendorID: "V001", DisplayName: "Acme Materials"},
	}}
	srv := httpadapter.New(opt, profilesvc.New(vendors), nil, nil, nil, quietLog())
	return httptest.NewServer(srv.Routes())
}

func TestGetHealthz(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPostOptimize(t *testing.T) {
	opt := &stubOptimizer{result: domain.RunResult{
		Mode: domain.ModeReport{ModeUsed: "balanced"},
	}}
	ts := newTestServer(opt)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/optimize", "application/json", strings.NewReader(`{"mode":"balanced"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if opt.mode != "balanced" {
		t.Errorf("mode passed through = %q", opt.mode)
	}
	var result domain.RunResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Mode.ModeUsed != "balanced" {
		t.Errorf("result mode = %q", result.Mode.ModeUsed)
	}
}

func TestPostOptimize_BadBody(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/optimize", "application/json", strings.NewReader(`{broken`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPostOptimize_EngineFailure(t *testing.T) {
	ts := newTestServer(&stubOptimizer{err: errors.New("boom")})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/optimize", "application/json", strings.NewReader(`{"mode":"balanced"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestPostCompare(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/compare", "application/json", strings.NewReader(`{"modes":["balanced","crisis_management"]}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var cmp domain.ModeComparison
	if err := json.NewDecoder(resp.Body).Decode(&cmp); err != nil {
		t.Fatal(err)
	}
	if cmp.Processing.ModesRequested != 2 {
		t.Errorf("modes requested = %d, want 2", cmp.Processing.ModesRequested)
	}
}

func TestRuns_UnavailableWithoutPersistence(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/runs", "application/json", strings.NewReader(`{"mode":"balanced"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("POST /runs status = %d, want 503", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/runs/abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("GET /runs/{id} status = %d, want 503", resp.StatusCode)
	}
}

func TestGetVendorProfile(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/vendors/V001")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var prof profilesvc.Profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		t.Fatal(err)
	}
	if prof.DisplayName != "Acme Materials" {
		t.Errorf("profile = %+v", prof)
	}
}

func TestGetVendorProfile_NotFound(t *testing.T) {
	ts := newTestServer(&stubOptimizer{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/vendors/V404")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
