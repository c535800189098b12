package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"construction-cost/core/determinism"
	"construction-cost/core/floorplan"
	"construction-cost/core/output"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// selectField feeds the "select" template
type selectField struct {
	Name     string
	Options  []string
	Selected string
}

var pageFuncs = template.FuncMap{
	"join": strings.Join,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"money": func(r *types.EstimateResult, d decimal.Decimal) string {
		return determinism.NewMoney(d, string(r.Currency)).String()
	},
	"options": func(name string, opts []string, selected string) selectField {
		return selectField{Name: name, Options: opts, Selected: selected}
	},
}

var pageTemplates = template.Must(template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))

func renderPage(w io.Writer, name string, data interface{}) error {
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "failed to render %s", name)
	}
	return nil
}

// indexPage is the estimate form
type indexPage struct {
	RequestID   string
	Values      url.Values
	Fingerprint string
	Sources     []string

	Structures  []string
	Foundations []string
	Grades      []string
	CementTypes []string
	Mortars     []string
	TileSizes   []string
	PaintTypes  []string
}

func newIndexPage(requestID string, values url.Values, fingerprint string, sources []string) indexPage {
	return indexPage{
		RequestID:   requestID,
		Values:      values,
		Fingerprint: fingerprint,
		Sources:     sources,
		Structures:  []string{string(types.StructureRCCFramed), string(types.StructureLoadBearing)},
		Foundations: stringsOf(types.FoundationTypes),
		Grades:      stringsOf(types.ConcreteGrades),
		CementTypes: stringsOf(types.CementTypes),
		Mortars:     stringsOf(types.MortarMixes),
		TileSizes:   stringsOf(types.TileSizes),
		PaintTypes:  stringsOf(types.PaintTypes),
	}
}

// resultPage shows every plan and the primary plan's bill
type resultPage struct {
	RequestID       string
	Results         []*types.EstimateResult
	Primary         *types.EstimateResult
	BOQ             []types.BOQRow
	ShowAssumptions bool
	Sources         []string
	Formats         []output.Format
	Values          url.Values
	FloorPlans      []floorPlanView
}

// floorPlanView is one sketched layout; SVG comes from core/floorplan and
// holds only generated markup with escaped text
type floorPlanView struct {
	Title string
	SVG   template.HTML
}

func floorPlanViews(spec types.BuildingSpec) ([]floorPlanView, error) {
	drawn, err := floorplan.Render(spec)
	if err != nil {
		return nil, err
	}
	views := make([]floorPlanView, len(drawn))
	for i, d := range drawn {
		views[i] = floorPlanView{Title: d.Title, SVG: template.HTML(d.SVG)}
	}
	return views, nil
}

// errorPage lists what went wrong
type errorPage struct {
	RequestID string
	Title     string
	Message   string
	Fields    []errors.FieldError
}

func stringsOf[T any](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
