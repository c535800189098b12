// Package cmd - rates commands
package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"construction-cost/adapters/ratesfile"
	"construction-cost/adapters/workbook"
	"construction-cost/core/determinism"
	"construction-cost/core/pricing"
	"construction-cost/core/types"
	"construction-cost/core/ui"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect and author material rates",
	Long: `Material rates are built in layers: the built-in defaults, then an optional
HCL rates file, then an optional XLSX price sheet. Later layers override
earlier ones. Configure the files under "rates" in the config file or with
CC_RATES_FILE and CC_WORKBOOK_FILE.`,
}

var ratesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active rates",
	Args:  cobra.NoArgs,
	RunE:  runRatesShow,
}

var ratesTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a rates file matching the defaults",
	Long: `Print a commented HCL rates file with every setting at its default value.

With --xlsx, write a price sheet in the layout the workbook loader reads instead.`,
	Args: cobra.NoArgs,
	RunE: runRatesTemplate,
}

var ratesCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a rates file or price sheet",
	Long: `Load a rates file (.hcl) or price sheet (.xlsx) on top of the defaults,
validate the result and print its fingerprint.`,
	Args: cobra.ExactArgs(1),
	RunE: runRatesCheck,
}

var (
	ratesFormat string
	ratesXLSX   string
)

func init() {
	ratesCmd.AddCommand(ratesShowCmd)
	ratesCmd.AddCommand(ratesTemplateCmd)
	ratesCmd.AddCommand(ratesCheckCmd)

	ratesShowCmd.Flags().StringVarP(&ratesFormat, "format", "f", "table", "output format (table, json)")
	ratesTemplateCmd.Flags().StringVar(&ratesXLSX, "xlsx", "", "write an XLSX price sheet to this path")
}

func runRatesShow(cmd *cobra.Command, args []string) error {
	store, err := loadStore(config.Get().Rates)
	if err != nil {
		return err
	}

	switch strings.ToLower(ratesFormat) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(store.Rates())
	case "table", "":
	default:
		return errors.InvalidInput("format", "unknown format %q (expected table or json)", ratesFormat)
	}

	rates := store.Rates()
	out := ui.NewWriter(cmd.OutOrStdout(), false)
	out.Header("Material Rates")

	prices := out.NewTable("Material", "Rate", "Per", "Unit").AlignRight(1, 2)
	for _, m := range types.Materials {
		p := rates.Prices[m]
		prices.AddRow(string(m), determinism.NewMoney(p.Rate, string(rates.Currency)).String(), fmt.Sprint(p.Basis), p.Unit)
	}
	prices.Render()

	out.Println("")
	plans := out.NewTable("Plan", "Quantity x", "Rate x").AlignRight(1, 2)
	for _, p := range types.Plans {
		f := rates.PlanFactor(p)
		plans.AddRow(string(p), ftoa(f.Quantity), ftoa(f.Rate))
	}
	plans.Render()

	out.Println("")
	out.Info("Fingerprint %s", store.Fingerprint())
	out.Info("Sources %s", strings.Join(store.Sources(), " > "))
	return nil
}

func runRatesTemplate(cmd *cobra.Command, args []string) error {
	if ratesXLSX == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), ratesfile.Template)
		return err
	}

	f, err := workbook.Template(pricing.Defaults())
	if err != nil {
		return errors.Internal("failed to build price sheet", err)
	}
	defer f.Close()
	if err := f.SaveAs(ratesXLSX); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "failed to write %s", ratesXLSX)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ratesXLSX)
	return nil
}

func runRatesCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := ui.NewWriter(cmd.OutOrStdout(), false)

	var rates types.MaterialRates
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		var report *workbook.Report
		rates, report, err = workbook.Load(path, pricing.Defaults())
		if err != nil {
			return err
		}
		out.Info("Sheet %q: %d applied, %d ignored", report.Sheet, len(report.Applied), len(report.Ignored))
		for _, row := range report.Ignored {
			out.Warning("row %d %q: %s", row.Number, row.Name, row.Reason)
		}
	default:
		rates, err = ratesfile.Load(path, pricing.Defaults())
		if err != nil {
			return err
		}
	}

	store, err := pricing.NewStore(rates)
	if err != nil {
		return err
	}
	out.Success("%s is valid", path)
	out.Info("Fingerprint %s", store.Fingerprint())
	return nil
}

func ftoa(f float64) string {
	return fmt.Sprintf("%g", f)
}
