package offer

import (
	"github.com/iwvelando/deal-calculator/pkg/constants"
)

// DefaultSettings is the dealer configuration used when none is supplied.
func DefaultSettings() Settings {
	return Settings{
		TradeDevalueItems: []DevalueItem{
			{Label: "Tires", Price: 400},
			{Label: "Windshield", Price: 350},
			{Label: "Brakes", Price: 300},
			{Label: "Excess wear", Price: 500},
		},
		DefaultInterestRate: constants.DefaultInterestRate,
		PriceIncrement:      constants.DefaultPriceIncrement,
	}
}

// NewInput is an empty deal carrying the standard add-ons, the dealer's
// default rate and the usual term choices.
func NewInput(settings Settings) Input {
	rate := settings.DefaultInterestRate
	if rate <= 0 {
		rate = constants.DefaultInterestRate
	}
	return Input{
		BrakePlus:    constants.DefaultBrakePlus,
		SafeGuard:    constants.DefaultSafeGuard,
		InterestRate: rate,
		DownPayment:  []float64{0},
		FinanceTerm:  []int{36, 48, 60, 72},
	}
}

// NewDemoInput is the sample deal shown on a fresh session and after a reset.
func NewDemoInput(settings Settings) Input {
	in := NewInput(settings)
	in.Buyer = Buyer{
		Name:  "Jordan Sample",
		City:  "Spokane",
		State: "WA",
		Zip:   "99201",
	}
	in.Vehicle = Vehicle{
		StockNumber: "D1042",
		Year:        2021,
		Make:        "Toyota",
		Model:       "RAV4",
		Trim:        "XLE",
		Odometer:    38250,
		MPG:         "27/35",
	}
	in.AcquisitionCost = 18500
	in.ReconditioningCost = 1250
	in.AdvertisingCost = 300
	in.FlooringCost = 150
	in.SellingPrice = 22995
	in.DocFee = 200
	in.TitleFee = 15
	in.LicenseEstimate = 450
	in.TaxRate = 9.1
	in.ProtectionPackage = 995
	in.GapInsurance = 695
	in.ServiceContract = 1995
	in.DownPayment = []float64{0, 1000, 2500}
	return in
}

// Reset replaces the deal with the demo deal.
func (in *Input) Reset(settings Settings) {
	*in = NewDemoInput(settings)
}
