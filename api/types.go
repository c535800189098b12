// Package api - API types for the estimate endpoints
// The HTML pages and the JSON API share these request and response shapes.
package api

import (
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// EstimateRequest is the input to POST /api/estimate.
// The building fields sit at the top level, as in a spec file.
type EstimateRequest struct {
	types.BuildingSpec

	// AllPlans estimates every plan instead of spec.plan only
	AllPlans bool `json:"all_plans,omitempty"`
}

// EstimateResponse is the output of POST /api/estimate
type EstimateResponse struct {
	RequestID string                        `json:"request_id"`
	Status    string                        `json:"status"`
	Results   []*types.EstimateResult       `json:"results,omitempty"`
	BOQ       map[types.Plan][]types.BOQRow `json:"boq,omitempty"`
	Errors    []ErrorDetail                 `json:"errors,omitempty"`
}

// ErrorDetail describes one failure. Field is set for input errors.
type ErrorDetail struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RatesResponse is the output of GET /api/rates
type RatesResponse struct {
	Fingerprint string              `json:"fingerprint"`
	Sources     []string            `json:"sources"`
	Rates       types.MaterialRates `json:"rates"`
}

// Error codes
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeInvalidJSON  = "INVALID_JSON"
	CodeInternal     = "INTERNAL_ERROR"
)

// Status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// errorDetails converts an error into response details: one per offending
// field for input errors, a single generic entry otherwise
func errorDetails(err error) []ErrorDetail {
	if fields := errors.Fields(err); len(fields) > 0 {
		out := make([]ErrorDetail, 0, len(fields))
		for _, f := range fields {
			out = append(out, ErrorDetail{Code: CodeInvalidInput, Field: f.Field, Message: f.Message})
		}
		return out
	}
	return []ErrorDetail{{Code: CodeInternal, Message: "internal error"}}
}
