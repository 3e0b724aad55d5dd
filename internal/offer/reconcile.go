package offer

import (
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

// BOTax is the business-and-occupation excise on a selling price, in cents.
func BOTax(sellingPrice float64) float64 {
	return mathutil.Round(mathutil.Finite(sellingPrice) * constants.BOTaxRate)
}

// ROIFromProfit expresses profit as a percentage of the base investment.
// A non-positive base yields 0.
func ROIFromProfit(profit, baseInvestment float64) float64 {
	if baseInvestment <= 0 {
		return 0
	}
	return mathutil.CalculatePercentage(mathutil.Finite(profit), baseInvestment)
}

// ROIFromPrice is the ROI percentage the selling price earns on the base
// investment once B&O tax is paid. A non-positive price or base yields 0.
func ROIFromPrice(sellingPrice, baseInvestment float64) float64 {
	if sellingPrice <= 0 || baseInvestment <= 0 {
		return 0
	}
	dealershipInvestment := mathutil.SumCents(baseInvestment, BOTax(sellingPrice))
	return ROIFromProfit(mathutil.SumCents(sellingPrice, -dealershipInvestment), baseInvestment)
}

// SellingPriceFromROI is the lowest price, on the given increment, that earns
// roi percent on the base investment after B&O tax:
//
//	ceil(base × (1 + roi/100) / (1 − BOTaxRate))
//
// A non-positive base yields 0. A non-positive increment means whole dollars.
func SellingPriceFromROI(baseInvestment, roi, increment float64) float64 {
	baseInvestment = mathutil.Finite(baseInvestment)
	if baseInvestment <= 0 {
		return 0
	}
	if increment <= 0 {
		increment = constants.DefaultPriceIncrement
	}
	target := baseInvestment * (1 + mathutil.Finite(roi)/constants.PercentageMultiplier) / (1 - constants.BOTaxRate)
	price := mathutil.CeilTo(target, increment)
	if price < 0 {
		return 0
	}
	return price
}
