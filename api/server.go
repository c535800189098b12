// Package api - HTTP front end for the estimator
// The API is ONLY responsible for: input ingestion, estimator orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"construction-cost/core/estimate"
	"construction-cost/core/output"
	"construction-cost/core/pricing"
	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

// maxFormBytes bounds request bodies
const maxFormBytes = 1 << 20

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	version string
	store   *pricing.Store
	formats *output.Registry
	logger  *zap.Logger
}

// NewServer creates a new API server estimating against store
func NewServer(version string, store *pricing.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
		formats: output.NewRegistry(),
		logger:  logger,
	}

	s.registerRoutes()
	s.handler = requestIDMiddleware(recoverMiddleware(logger, loggingMiddleware(logger, s.mux)))
	return s
}

// registerRoutes registers all routes
func (s *Server) registerRoutes() {
	// Pages
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /estimate", s.handleEstimateForm)
	s.mux.HandleFunc("POST /estimate/export", s.handleExport)

	// JSON API
	s.mux.HandleFunc("POST /api/estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /api/rates", s.handleRates)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleIndex serves the estimate form, prefilled with the example building
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := newIndexPage(RequestID(r.Context()), FormValues(types.ExampleSpec()), s.store.Fingerprint(), s.store.Sources())
	s.writePage(w, r, "index", page, http.StatusOK)
}

// handleEstimateForm handles POST /estimate from the form
func (s *Server) handleEstimateForm(w http.ResponseWriter, r *http.Request) {
	values, report, err := s.estimateForm(w, r)
	if err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	plans, err := floorPlanViews(report.Spec)
	if err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	primary := report.Primary()
	page := resultPage{
		RequestID:       RequestID(r.Context()),
		Results:         report.Results,
		Primary:         primary,
		BOQ:             estimate.BillOfQuantities(primary),
		ShowAssumptions: report.ShowAssumptions,
		Sources:         report.Sources,
		Formats:         s.exportFormats(),
		Values:          values,
		FloorPlans:      plans,
	}
	s.writePage(w, r, "result", page, http.StatusOK)
}

// handleExport handles POST /estimate/export?format=xlsx|pdf|json
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	formatter, err := s.formats.Lookup(r.URL.Query().Get("format"))
	if err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	_, report, err := s.estimateForm(w, r)
	if err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, report); err != nil {
		s.writeErrorPage(w, r, errors.Internal("failed to render export", err))
		return
	}

	w.Header().Set("Content-Type", formatter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename(report, formatter.Format())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// estimateForm parses the posted form and estimates every plan
func (s *Server) estimateForm(w http.ResponseWriter, r *http.Request) (url.Values, *output.Report, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, nil, errors.InvalidInput("form", "could not read the form: %v", err)
	}

	spec, err := ParseForm(r.PostForm)
	if err != nil {
		return nil, nil, err
	}

	results, err := estimate.EstimatePlans(spec, s.store.Rates())
	if err != nil {
		return nil, nil, err
	}
	return r.PostForm, output.NewReport(spec, results, s.store.Sources()), nil
}

// handleEstimate handles POST /api/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())

	var req EstimateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, &EstimateResponse{
			RequestID: requestID,
			Status:    StatusError,
			Errors:    []ErrorDetail{{Code: CodeInvalidJSON, Message: err.Error()}},
		}, http.StatusBadRequest)
		return
	}

	// Execute estimator (NO COST LOGIC HERE)
	var results []*types.EstimateResult
	var err error
	if req.AllPlans {
		results, err = estimate.EstimatePlans(req.BuildingSpec, s.store.Rates())
	} else {
		var result *types.EstimateResult
		result, err = estimate.Estimate(req.BuildingSpec, s.store.Rates())
		results = []*types.EstimateResult{result}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := &EstimateResponse{
		RequestID: requestID,
		Status:    StatusSuccess,
		Results:   results,
		BOQ:       make(map[types.Plan][]types.BOQRow, len(results)),
	}
	for _, res := range results {
		resp.BOQ[res.Plan] = estimate.BillOfQuantities(res)
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleRates handles GET /api/rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, &RatesResponse{
		Fingerprint: s.store.Fingerprint(),
		Sources:     s.store.Sources(),
		Rates:       s.store.Rates(),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"rates":   s.store.Fingerprint(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "construction-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

// exportFormats lists the downloadable formats; the table is CLI only
func (s *Server) exportFormats() []output.Format {
	var out []output.Format
	for _, f := range s.formats.Formats() {
		if f != output.FormatTable {
			out = append(out, f)
		}
	}
	return out
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// writeError writes a JSON error response. Input errors are the caller's
// fault and list every offending field; anything else is logged and hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := s.statusOf(r, err)
	s.writeJSON(w, &EstimateResponse{
		RequestID: RequestID(r.Context()),
		Status:    StatusError,
		Errors:    errorDetails(err),
	}, status)
}

// writePage renders a page into a buffer first so a template failure
// still produces a clean 500
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, name string, data interface{}, status int) {
	var buf bytes.Buffer
	if err := renderPage(&buf, name, data); err != nil {
		s.logger.Error("page render failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("page", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeErrorPage renders the error page for form posts
func (s *Server) writeErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	status := s.statusOf(r, err)
	page := errorPage{RequestID: RequestID(r.Context())}
	if status == http.StatusBadRequest {
		page.Title = "Invalid input"
		page.Fields = errors.Fields(err)
	} else {
		page.Title = "Something went wrong"
		page.Message = "The estimate could not be produced. Please try again later."
	}
	s.writePage(w, r, "error", page, status)
}

// statusOf maps an error to its HTTP status, logging server-side failures
func (s *Server) statusOf(r *http.Request, err error) int {
	if errors.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	s.logger.Error("estimate failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	return http.StatusInternalServerError
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// HTTPServer wraps the server with the configured address and timeouts
func (s *Server) HTTPServer(cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           s,
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
	}
}
