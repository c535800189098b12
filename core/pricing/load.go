package pricing

import (
	"os"

	"go.uber.org/zap"

	"construction-cost/adapters/ratesfile"
	"construction-cost/adapters/workbook"
	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

// Load builds the rates in layers: defaults, then the HCL standards file,
// then the price workbook. A configured file that does not exist is skipped
// with a warning. A file that exists but cannot be read fails the load.
func Load(cfg config.RatesConfig, logger *zap.Logger) (types.MaterialRates, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rates := Defaults()

	if path := cfg.StandardsFile; path != "" {
		if exists(path) {
			next, err := ratesfile.Load(path, rates)
			if err != nil {
				return types.MaterialRates{}, err
			}
			rates = next
			logger.Info("loaded rates file", zap.String("path", path))
		} else {
			logger.Warn("rates file not found, keeping defaults", zap.String("path", path))
		}
	}

	if path := cfg.WorkbookFile; path != "" {
		if exists(path) {
			next, report, err := workbook.Load(path, rates)
			if err != nil {
				return types.MaterialRates{}, err
			}
			rates = next
			logger.Info("loaded price workbook",
				zap.String("path", path),
				zap.String("sheet", report.Sheet),
				zap.Int("applied", len(report.Applied)),
				zap.Int("ignored", len(report.Ignored)),
			)
			for _, row := range report.Ignored {
				logger.Debug("ignored workbook row",
					zap.Int("row", row.Number),
					zap.String("name", row.Name),
					zap.String("reason", row.Reason),
				)
			}
		} else {
			logger.Warn("price workbook not found, keeping previous rates", zap.String("path", path))
		}
	}

	if err := rates.Validate(); err != nil {
		return types.MaterialRates{}, errors.Config("rates are incomplete", err)
	}
	return rates, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
