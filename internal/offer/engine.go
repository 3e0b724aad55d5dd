package offer

import (
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

// DeriveFromPrice computes the offer sheet with the deal's selling price as
// the source of truth. ROI is recomputed from it and replaces whatever ROI
// the deal carried. A zero selling price yields zero profit and ROI.
func DeriveFromPrice(in Input, settings Settings) Sheet {
	return derive(in, settings, ModePrice)
}

// DeriveFromROI computes the offer sheet with the deal's ROI percentage as
// the source of truth. The selling price is the lowest price, on the
// dealer's price increment, that earns that ROI after B&O tax.
func DeriveFromROI(in Input, settings Settings) Sheet {
	return derive(in, settings, ModeROI)
}

// Derive dispatches on the deal's LastChanged tag.
func Derive(in Input, settings Settings) Sheet {
	return derive(in, settings, ModeFor(in))
}

// DeriveMode computes the offer sheet in the given mode.
func DeriveMode(in Input, settings Settings, mode Mode) Sheet {
	if mode != ModeROI {
		mode = ModePrice
	}
	return derive(in, settings, mode)
}

// EffectiveReconditioning is the reconditioning cost counted in the base
// investment. New vehicles carry none.
func EffectiveReconditioning(in Input) float64 {
	if in.IsNewVehicle {
		return 0
	}
	return mathutil.Round(in.ReconditioningCost)
}

// BaseInvestment is acquisition + effective reconditioning + advertising + flooring.
func BaseInvestment(in Input) float64 {
	return mathutil.SumCents(in.AcquisitionCost, EffectiveReconditioning(in), in.AdvertisingCost, in.FlooringCost)
}

// AddonTotal is brake plus and safeguard, plus whichever optional products
// the dealer has switched on.
func AddonTotal(in Input, settings Settings) float64 {
	amounts := []float64{in.BrakePlus, in.SafeGuard}
	if settings.ShowProtectionPackage {
		amounts = append(amounts, in.ProtectionPackage)
	}
	if settings.ShowGapInsurance {
		amounts = append(amounts, in.GapInsurance)
	}
	if settings.ShowServiceContract {
		amounts = append(amounts, in.ServiceContract)
	}
	return mathutil.SumCents(amounts...)
}

// TaxableAmount is price plus add-ons, less the trade unless the trade is a
// lease.
func TaxableAmount(sellingPrice, addons, tradeValue float64, tradeIsLease bool) float64 {
	if tradeIsLease {
		return mathutil.SumCents(sellingPrice, addons)
	}
	return mathutil.SumCents(sellingPrice, addons, -tradeValue)
}

// SalesTax applies taxRate percent to a positive taxable amount.
func SalesTax(taxableAmount, taxRate float64) float64 {
	if taxableAmount <= 0 {
		return 0
	}
	return mathutil.Round(mathutil.ApplyPercentage(taxableAmount, mathutil.Finite(taxRate)))
}

func derive(in Input, settings Settings, mode Mode) Sheet {
	in = sanitize(in)
	settings = sanitizeSettings(settings)

	sheet := Sheet{Mode: mode}
	sheet.EffectiveReconditioning = EffectiveReconditioning(in)
	sheet.BaseInvestment = BaseInvestment(in)

	price := mathutil.Round(in.SellingPrice)
	roi := in.ROIPercentage
	if mode == ModeROI {
		price = SellingPriceFromROI(sheet.BaseInvestment, roi, settings.PriceIncrement)
		if price == 0 {
			roi = 0
		}
	}
	if price < 0 {
		price = 0
	}
	sheet.SellingPrice = price

	sheet.BOTax = BOTax(price)
	sheet.DealershipInvestment = mathutil.SumCents(sheet.BaseInvestment, sheet.BOTax)
	if price > 0 {
		sheet.Profit = mathutil.SumCents(price, -sheet.DealershipInvestment)
	}
	if mode == ModeROI {
		sheet.ROIPercentage = roi
	} else {
		sheet.ROIPercentage = ROIFromProfit(sheet.Profit, sheet.BaseInvestment)
	}

	sheet.TotalTradeDevalue = TotalTradeDevalue(in, settings)
	sheet.TradeValue = mathutil.Round(in.TradeValue)
	sheet.NetTrade = mathutil.SumCents(in.TradeValue, -in.TradePayOff)

	sheet.TotalAddons = AddonTotal(in, settings)
	sheet.TaxableAmount = TaxableAmount(price, sheet.TotalAddons, sheet.TradeValue, in.TradeIsLease)
	sheet.SalesTax = SalesTax(sheet.TaxableAmount, in.TaxRate)

	sheet.LineItemFees = mathutil.SumCents(in.TitleFee, in.TireFee, in.OtherFee)
	if in.IsNewVehicle {
		sheet.Rebates = mathutil.Round(in.Rebates)
	}

	// Title, tire and other fees stay out of the financed total; they are
	// reported separately in LineItemFees.
	sheet.TotalAmountFinanced = mathutil.SumCents(
		sheet.TaxableAmount,
		in.TradePayOff,
		in.DocFee,
		in.LicenseEstimate,
		sheet.SalesTax,
	)

	sheet.FinanceTableRows = FinanceTable(sheet.TotalAmountFinanced, in.InterestRate, in.DownPayment, in.FinanceTerm)
	return sheet
}
