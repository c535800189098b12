// Package output renders estimates for people and machines.
// Every format renders the same Report, so the CLI and the HTTP export
// produce identical documents for identical inputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"construction-cost/core/estimate"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable CLI table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatXLSX is a bill of quantities workbook
	FormatXLSX Format = "xlsx"

	// FormatPDF is a bill of quantities document
	FormatPDF Format = "pdf"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// ContentType is the MIME type of the output
	ContentType() string

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything a formatter renders
type Report struct {
	// Results holds one estimate per plan, in plan order
	Results []*types.EstimateResult `json:"results"`

	// Spec is the building the estimates are for
	Spec types.BuildingSpec `json:"spec"`

	// Sources lists the rate layers in use
	Sources []string `json:"rate_sources,omitempty"`

	// ShowAssumptions includes the assumption list
	ShowAssumptions bool `json:"-"`
}

// NewReport builds a report for the given results
func NewReport(spec types.BuildingSpec, results []*types.EstimateResult, sources []string) *Report {
	return &Report{
		Results:         results,
		Spec:            spec,
		Sources:         sources,
		ShowAssumptions: true,
	}
}

// Primary returns the result to headline: standard if present, else the first
func (r *Report) Primary() *types.EstimateResult {
	if p := estimate.Find(r.Results, types.PlanStandard); p != nil {
		return p
	}
	if len(r.Results) > 0 {
		return r.Results[0]
	}
	return nil
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding every built-in formatter
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range []Formatter{
		NewTableFormatter(true),
		NewJSONFormatter(),
		NewXLSXFormatter(),
		NewPDFFormatter(),
	} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeConfig, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered formats, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup parses a format name and returns its formatter
func (r *Registry) Lookup(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if f, ok := r.Get(format); ok {
		return f, nil
	}
	names := make([]string, 0)
	for _, f := range r.Formats() {
		names = append(names, string(f))
	}
	return nil, errors.InvalidInput("format", "unknown format %q (expected one of %s)", name, strings.Join(names, ", "))
}

// Filename returns a download name such as estimate-1a2b3c4d5e6f.xlsx
func Filename(report *Report, format Format) string {
	name := "estimate"
	if p := report.Primary(); p != nil && p.InputHash != "" {
		name += "-" + p.InputHash
	}
	return fmt.Sprintf("%s.%s", name, format)
}
