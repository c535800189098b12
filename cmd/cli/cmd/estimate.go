// Package cmd - estimate command
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"construction-cost/core/estimate"
	"construction-cost/core/output"
	"construction-cost/core/pricing"
	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
	"construction-cost/internal/logging"
)

var (
	inputFile    string
	outputFormat string
	outputFile   string
	planName     string
	allPlans     bool
	printExample bool
	noColor      bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate materials and cost for a building",
	Long: `Read a building spec (JSON) and produce a bill of materials.

A building spec groups the dimensions the way the web form does: plot, foundation,
columns, beams, slab, walls and finishing. Use --example for a starting point.

Examples:
  construction-cost estimate --example > house.json
  construction-cost estimate --input house.json
  construction-cost estimate --input house.json --plan premium --format json
  construction-cost estimate --input - --all-plans --format pdf --output boq.pdf < house.json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "building spec JSON file, or - for stdin")
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (table, json, xlsx, pdf); default from config")
	estimateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to a file instead of stdout")
	estimateCmd.Flags().StringVarP(&planName, "plan", "p", "", "plan to estimate (economy, standard, premium); default from the spec file")
	estimateCmd.Flags().BoolVarP(&allPlans, "all-plans", "a", false, "estimate and compare every plan")
	estimateCmd.Flags().BoolVar(&printExample, "example", false, "print an example building spec and exit")
	estimateCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored table output")
	estimateCmd.MarkFlagsMutuallyExclusive("plan", "all-plans")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if printExample {
		return writeSpec(cmd.OutOrStdout(), types.ExampleSpec())
	}
	if inputFile == "" {
		return errors.Input("--input is required (use --example for a sample spec)")
	}

	cfg := config.Get()
	spec, err := readSpec(inputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if planName != "" {
		spec.Plan = types.Plan(planName)
	}

	store, err := loadStore(cfg.Rates)
	if err != nil {
		return err
	}

	var results []*types.EstimateResult
	if allPlans {
		results, err = estimate.EstimatePlans(spec, store.Rates())
	} else {
		var result *types.EstimateResult
		result, err = estimate.Estimate(spec, store.Rates())
		results = []*types.EstimateResult{result}
	}
	if err != nil {
		return describeInputError(cmd.ErrOrStderr(), err)
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.NewRegistry().Lookup(format)
	if err != nil {
		return err
	}
	if formatter.Format() == output.FormatTable && !noColor && outputFile == "" {
		formatter = output.NewTableFormatter(false)
	}

	report := output.NewReport(spec, results, store.Sources())
	report.ShowAssumptions = cfg.Output.ShowAssumptions

	logging.Debug("estimate complete",
		zap.Int("plans", len(results)),
		zap.String("format", string(formatter.Format())),
		zap.String("input_hash", results[0].InputHash),
	)

	return writeOutput(cmd.OutOrStdout(), formatter, report)
}

// readSpec decodes a building spec, rejecting unknown fields
func readSpec(path string, stdin io.Reader) (types.BuildingSpec, error) {
	var spec types.BuildingSpec

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return spec, errors.Wrapf(errors.TypeInput, err, "failed to read %s", path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return spec, errors.Parsing(fmt.Sprintf("invalid building spec %s", path), err)
	}
	return spec, nil
}

func writeSpec(w io.Writer, spec types.BuildingSpec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(spec)
}

// loadStore builds the rate store from the configured layers
func loadStore(cfg config.RatesConfig) (*pricing.Store, error) {
	rates, err := pricing.Load(cfg, logging.Logger)
	if err != nil {
		return nil, err
	}
	return pricing.NewStore(rates)
}

func writeOutput(stdout io.Writer, formatter output.Formatter, report *output.Report) error {
	if outputFile == "" {
		return formatter.Render(stdout, report)
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, report); err != nil {
		return errors.Internal("failed to render estimate", err)
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "failed to write %s", outputFile)
	}
	fmt.Fprintf(stdout, "Wrote %s (%s)\n", outputFile, formatter.Format())
	return nil
}

// describeInputError prints one line per offending field
func describeInputError(w io.Writer, err error) error {
	fields := errors.Fields(err)
	if len(fields) == 0 {
		return err
	}
	fmt.Fprintln(w, "Invalid building spec:")
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
	}
	return errors.Newf(errors.TypeInput, "%d invalid field(s)", len(fields))
}
