package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"construction-cost/core/pricing"
	"construction-cost/core/types"
)

func newTestServer() *Server {
	return NewServer("test", pricing.MustNewStore(pricing.Defaults()), nil)
}

func postForm(t *testing.T, s *Server, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="plot_length" value="40"`, `name="finish_flags"`, `<option value="1:6" selected>`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %s", want)
		}
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}

func TestEstimateForm(t *testing.T) {
	s := newTestServer()
	rec := postForm(t, s, "/estimate", FormValues(types.ExampleSpec()))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Economy", "Standard", "Premium", "Bill of Quantities", "INR ", "/estimate/export?format=pdf",
		"Floor Plans", "<svg ", "Open Concept", "Separate Rooms", "BEDROOM 1", "LIVING"} {
		if !strings.Contains(body, want) {
			t.Errorf("result page missing %q", want)
		}
	}
}

func TestEstimateFormInvalid(t *testing.T) {
	s := newTestServer()
	values := FormValues(types.ExampleSpec())
	values.Set(FieldPlotWidth, "-5")
	values.Set(FieldCementType, "opc99")
	values.Set(FieldSlabArea, "1e308")

	rec := postForm(t, s, "/estimate", values)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"plot.width", "cement_type", "slab.area"} {
		if !strings.Contains(body, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}

func TestEstimateFormOverflow(t *testing.T) {
	s := newTestServer()
	values := FormValues(types.ExampleSpec())
	values.Set(FieldPlotLength, "1e200")
	values.Set(FieldPlotWidth, "1e200")
	values.Set(FieldSlabArea, "1e308")

	rec := postForm(t, s, "/estimate", values)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"plot.length", "plot.width", "slab.area", "must be at most"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("error page missing %q", want)
		}
	}
}

func TestExport(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"pdf", "application/pdf", "%PDF-"},
		{"json", "application/json", "{"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := postForm(t, s, "/estimate/export?format="+tt.format, FormValues(types.ExampleSpec()))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("content type = %q", got)
			}
			if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "estimate-") {
				t.Errorf("content disposition = %q", got)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}

	rec := postForm(t, s, "/estimate/export?format=docx", FormValues(types.ExampleSpec()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", rec.Code)
	}
}

func TestAPIEstimate(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, EstimateRequest{BuildingSpec: types.ExampleSpec()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Results []struct {
			Plan      string `json:"plan"`
			TotalCost string `json:"total_cost"`
		} `json:"results"`
		BOQ map[string][]json.RawMessage `json:"boq"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != StatusSuccess || len(resp.Results) != 1 || resp.Results[0].Plan != "standard" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.BOQ["standard"]) == 0 {
		t.Error("missing bill of quantities")
	}

	rec = postJSON(t, s, EstimateRequest{BuildingSpec: types.ExampleSpec(), AllPlans: true})
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 3 {
		t.Errorf("all plans returned %d results", len(resp.Results))
	}
}

func TestAPIEstimateErrors(t *testing.T) {
	s := newTestServer()

	spec := types.ExampleSpec()
	spec.Floors = 0
	spec.Walls.Mortar = "2:1"
	rec := postJSON(t, s, EstimateRequest{BuildingSpec: spec})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp EstimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	fields := map[string]bool{}
	for _, e := range resp.Errors {
		if e.Code != CodeInvalidInput {
			t.Errorf("code = %s", e.Code)
		}
		fields[e.Field] = true
	}
	if !fields["floors"] || !fields["walls.mortar"] || len(fields) != 2 {
		t.Errorf("fields = %v", fields)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), CodeInvalidJSON) {
		t.Errorf("bad JSON: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRates(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	var resp struct {
		Fingerprint string   `json:"fingerprint"`
		Sources     []string `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Fingerprint != s.store.Fingerprint() || len(resp.Sources) == 0 {
		t.Errorf("rates = %+v", resp)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("generated request id invalid: %v", err)
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(HeaderRequestID, id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got == "not-a-uuid" {
		t.Error("malformed request id was kept")
	}
}
