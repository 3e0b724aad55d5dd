package offer

import (
	"fmt"
	"math"

	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

type amountField struct {
	name  string
	value *float64
}

func (in *Input) amountFields() []amountField {
	return []amountField{
		{"acquisitionCost", &in.AcquisitionCost},
		{"reconditioningCost", &in.ReconditioningCost},
		{"advertisingCost", &in.AdvertisingCost},
		{"flooringCost", &in.FlooringCost},
		{"sellingPrice", &in.SellingPrice},
		{"roiPercentage", &in.ROIPercentage},
		{"tradeMarketValue", &in.TradeMarketValue},
		{"tradePayOff", &in.TradePayOff},
		{"tradeValue", &in.TradeValue},
		{"docFee", &in.DocFee},
		{"titleFee", &in.TitleFee},
		{"tireFee", &in.TireFee},
		{"otherFee", &in.OtherFee},
		{"licenseEstimate", &in.LicenseEstimate},
		{"taxRate", &in.TaxRate},
		{"rebates", &in.Rebates},
		{"brakePlus", &in.BrakePlus},
		{"safeGuard", &in.SafeGuard},
		{"protectionPackage", &in.ProtectionPackage},
		{"gapInsurance", &in.GapInsurance},
		{"serviceContract", &in.ServiceContract},
		{"interestRate", &in.InterestRate},
	}
}

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// NonFiniteFields names every numeric field holding NaN or ±Inf. Those
// fields are read as 0.
func NonFiniteFields(in Input) []string {
	var names []string
	for _, f := range in.amountFields() {
		if nonFinite(*f.value) {
			names = append(names, f.name)
		}
	}
	for i, d := range in.DownPayment {
		if nonFinite(d) {
			names = append(names, fmt.Sprintf("downPayment[%d]", i))
		}
	}
	for i, item := range in.TradeDevalueItems {
		if nonFinite(item.Value) {
			names = append(names, fmt.Sprintf("tradeDevalueItems[%d].value", i))
		}
	}
	return names
}

// sanitize returns a copy of in with every non-finite amount replaced by 0.
// Slices are copied so the caller's deal is never modified.
func sanitize(in Input) Input {
	for _, f := range in.amountFields() {
		*f.value = mathutil.Finite(*f.value)
	}

	downs := make([]float64, len(in.DownPayment))
	for i, d := range in.DownPayment {
		downs[i] = mathutil.Finite(d)
	}
	in.DownPayment = downs

	items := make([]CustomDevalue, len(in.TradeDevalueItems))
	for i, item := range in.TradeDevalueItems {
		item.Value = mathutil.Finite(item.Value)
		items[i] = item
	}
	in.TradeDevalueItems = items
	return in
}

func sanitizeSettings(settings Settings) Settings {
	items := make([]DevalueItem, len(settings.TradeDevalueItems))
	for i, item := range settings.TradeDevalueItems {
		item.Price = mathutil.Finite(item.Price)
		items[i] = item
	}
	settings.TradeDevalueItems = items
	settings.DefaultInterestRate = mathutil.Finite(settings.DefaultInterestRate)
	settings.PriceIncrement = mathutil.Finite(settings.PriceIncrement)
	return settings
}
