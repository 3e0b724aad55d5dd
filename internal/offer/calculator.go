package offer

import (
	"go.uber.org/zap"
)

// Calculator runs the derivation and logs what it had to ignore or coerce.
// It holds no deal state and is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a Calculator. A nil logger is replaced by a no-op logger.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Derive computes the offer sheet in the given mode.
func (c *Calculator) Derive(in Input, settings Settings, mode Mode) Sheet {
	op := "offer.DeriveFromPrice"
	if mode == ModeROI {
		op = "offer.DeriveFromROI"
	}

	if fields := NonFiniteFields(in); len(fields) > 0 {
		c.logger.Debug("coercing non-finite amounts to zero",
			zap.String("op", op),
			zap.Strings("fields", fields),
		)
	}
	if _, skipped := selectedDevalue(in, settings); len(skipped) > 0 {
		c.logger.Debug("ignoring trade devaluation indices outside the catalog",
			zap.String("op", op),
			zap.Ints("indices", skipped),
			zap.Int("catalogSize", len(settings.TradeDevalueItems)),
		)
	}

	sheet := DeriveMode(in, settings, mode)

	c.logger.Debug("derived offer",
		zap.String("op", op),
		zap.Float64("baseInvestment", sheet.BaseInvestment),
		zap.Float64("sellingPrice", sheet.SellingPrice),
		zap.Float64("roiPercentage", sheet.ROIPercentage),
		zap.Float64("totalAmountFinanced", sheet.TotalAmountFinanced),
		zap.Int("financeRows", len(sheet.FinanceTableRows)),
	)
	return sheet
}
