package output

import (
	"encoding/json"
	"io"

	"construction-cost/core/estimate"
	"construction-cost/core/types"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// ContentType returns the MIME type
func (f *JSONFormatter) ContentType() string { return "application/json" }

// jsonPlan is one plan with its bill of quantities
type jsonPlan struct {
	*types.EstimateResult
	BOQ []types.BOQRow `json:"boq"`
}

type jsonReport struct {
	Spec    types.BuildingSpec `json:"spec"`
	Plans   []jsonPlan         `json:"plans"`
	Sources []string           `json:"rate_sources,omitempty"`
}

// Render writes the JSON document
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	doc := jsonReport{
		Spec:    report.Spec,
		Plans:   make([]jsonPlan, 0, len(report.Results)),
		Sources: report.Sources,
	}
	for _, r := range report.Results {
		plan := jsonPlan{EstimateResult: r, BOQ: estimate.BillOfQuantities(r)}
		if !report.ShowAssumptions {
			copied := *r
			copied.Assumptions = nil
			plan.EstimateResult = &copied
		}
		doc.Plans = append(doc.Plans, plan)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
