package offer

import (
	"github.com/iwvelando/deal-calculator/pkg/validation"
)

// Check lists problems with the deal that the engine will silently work
// around. It never prevents a derivation.
func Check(in Input, settings Settings) []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	for _, f := range in.amountFields() {
		switch f.name {
		case "roiPercentage", "taxRate", "interestRate":
			continue
		}
		add(validation.ValidateNonNegative(f.name, *f.value))
	}
	add(validation.ValidatePercent("taxRate", in.TaxRate, 0, 100))
	add(validation.ValidatePercent("interestRate", in.InterestRate, 0, 100))
	if nonFinite(in.ROIPercentage) {
		add(validation.ValidateNonNegative("roiPercentage", in.ROIPercentage))
	}

	for _, idx := range in.TradeDevalueSelected {
		add(validation.ValidateIndex("tradeDevalueSelected", idx, len(settings.TradeDevalueItems)))
	}
	for _, term := range in.FinanceTerm {
		add(validation.ValidateTerm(term))
	}
	for _, d := range in.DownPayment {
		add(validation.ValidateNonNegative("downPayment", d))
	}

	if in.IsNewVehicle && in.ReconditioningCost != 0 {
		add("reconditioningCost is ignored on a new vehicle")
	}
	if !in.IsNewVehicle && in.Rebates != 0 {
		add("rebates apply to new vehicles only and are ignored")
	}
	if !in.HasTrade && (in.TradeValue != 0 || in.TradePayOff != 0) {
		add("trade amounts are present but hasTrade is off")
	}
	return warnings
}
