package offer

import (
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

// selectedDevalue returns the catalog entries picked on the deal, each index
// counted once. Indices outside the catalog are reported in skipped.
func selectedDevalue(in Input, settings Settings) (picked []DevalueItem, skipped []int) {
	seen := make(map[int]struct{}, len(in.TradeDevalueSelected))
	for _, idx := range in.TradeDevalueSelected {
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		if idx < 0 || idx >= len(settings.TradeDevalueItems) {
			skipped = append(skipped, idx)
			continue
		}
		picked = append(picked, settings.TradeDevalueItems[idx])
	}
	return picked, skipped
}

// TotalTradeDevalue sums the selected catalog deductions and the deal's
// custom deductions.
func TotalTradeDevalue(in Input, settings Settings) float64 {
	picked, _ := selectedDevalue(in, settings)
	amounts := make([]float64, 0, len(picked)+len(in.TradeDevalueItems))
	for _, item := range picked {
		amounts = append(amounts, item.Price)
	}
	for _, item := range in.TradeDevalueItems {
		amounts = append(amounts, item.Value)
	}
	return mathutil.SumCents(amounts...)
}

// SyncTradeValue sets the trade's actual cash value from its market value:
// tradeValue = tradeMarketValue − total devaluation. Call it after editing
// the market value or the deductions.
func (in *Input) SyncTradeValue(settings Settings) {
	in.TradeValue = mathutil.SumCents(in.TradeMarketValue, -TotalTradeDevalue(*in, settings))
}

// SetTradeValue records an edited actual cash value and moves the market
// value so that the deductions still account for the difference.
func (in *Input) SetTradeValue(value float64, settings Settings) {
	in.TradeValue = mathutil.Round(value)
	in.TradeMarketValue = mathutil.SumCents(in.TradeValue, TotalTradeDevalue(*in, settings))
}

// ClearTrade removes every trade amount from the deal.
func (in *Input) ClearTrade() {
	in.HasTrade = false
	in.TradeMarketValue = 0
	in.TradePayOff = 0
	in.TradeValue = 0
	in.TradeDevalueSelected = nil
	in.TradeDevalueItems = nil
	in.TradeIsLease = false
	in.TradeVehicle = Vehicle{}
}
