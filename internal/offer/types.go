// Package offer derives a balanced offer sheet from a deal and the dealer's
// settings: investment basis, B&O tax, profit and ROI, trade equity, taxes,
// the amount financed and a matrix of payment options.
package offer

import (
	"fmt"
	"strings"

	"github.com/iwvelando/deal-calculator/pkg/constants"
)

// Mode selects which of selling price and ROI is authoritative for a
// recomputation. The other one is derived from it.
type Mode string

const (
	// ModePrice takes the selling price as given and derives ROI.
	ModePrice Mode = constants.ModePrice
	// ModeROI takes the ROI percentage as given and derives the selling price.
	ModeROI Mode = constants.ModeROI
)

// ParseMode accepts "price" or "roi" (case-insensitive). An empty string
// yields ModePrice.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.ModePrice:
		return ModePrice, nil
	case constants.ModeROI:
		return ModeROI, nil
	default:
		return "", fmt.Errorf("expected mode of %s or %s, got %s", constants.ModePrice, constants.ModeROI, value)
	}
}

// ModeFor maps the deal's LastChanged tag to a Mode.
func ModeFor(in Input) Mode {
	if strings.EqualFold(strings.TrimSpace(in.LastChanged), constants.LastChangedROI) {
		return ModeROI
	}
	return ModePrice
}

// DevalueItem is a named deduction from the dealer's trade devaluation catalog.
type DevalueItem struct {
	Label string  `json:"label" yaml:"label" mapstructure:"label"`
	Price float64 `json:"price" yaml:"price" mapstructure:"price"`
}

// CustomDevalue is an ad-hoc deduction entered on a single deal.
type CustomDevalue struct {
	Label string  `json:"label" yaml:"label" mapstructure:"label"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// Settings is the dealer-wide configuration consumed by the engine.
type Settings struct {
	TradeDevalueItems     []DevalueItem `json:"tradeDevalueItems" yaml:"tradeDevalueItems" mapstructure:"tradeDevalueItems"`
	ShowProtectionPackage bool          `json:"showProtectionPackage" yaml:"showProtectionPackage" mapstructure:"showProtectionPackage"`
	ShowGapInsurance      bool          `json:"showGapInsurance" yaml:"showGapInsurance" mapstructure:"showGapInsurance"`
	ShowServiceContract   bool          `json:"showServiceContract" yaml:"showServiceContract" mapstructure:"showServiceContract"`
	DefaultInterestRate   float64       `json:"defaultInterestRate" yaml:"defaultInterestRate" mapstructure:"defaultInterestRate"`
	// PriceIncrement is the step ROI-derived selling prices are rounded up to.
	// Zero means whole dollars.
	PriceIncrement float64 `json:"priceIncrement" yaml:"priceIncrement" mapstructure:"priceIncrement"`
	// WPFL/OCFL only change what the offer sheet shows.
	ShowWPFL bool `json:"showWPFL" yaml:"showWPFL" mapstructure:"showWPFL"`
	ShowOCFL bool `json:"showOCFL" yaml:"showOCFL" mapstructure:"showOCFL"`
}

// Buyer identifies the customer. None of it is used in pricing.
type Buyer struct {
	Name    string `json:"name" yaml:"name" mapstructure:"name"`
	Address string `json:"address" yaml:"address" mapstructure:"address"`
	City    string `json:"city" yaml:"city" mapstructure:"city"`
	State   string `json:"state" yaml:"state" mapstructure:"state"`
	Zip     string `json:"zip" yaml:"zip" mapstructure:"zip"`
	Phone   string `json:"phone" yaml:"phone" mapstructure:"phone"`
	Email   string `json:"email" yaml:"email" mapstructure:"email"`
}

// Vehicle identifies a vehicle. None of it is used in pricing.
type Vehicle struct {
	StockNumber string `json:"stockNumber" yaml:"stockNumber" mapstructure:"stockNumber"`
	VIN         string `json:"vin" yaml:"vin" mapstructure:"vin"`
	Year        int    `json:"year" yaml:"year" mapstructure:"year"`
	Make        string `json:"make" yaml:"make" mapstructure:"make"`
	Model       string `json:"model" yaml:"model" mapstructure:"model"`
	Trim        string `json:"trim" yaml:"trim" mapstructure:"trim"`
	Color       string `json:"color" yaml:"color" mapstructure:"color"`
	Odometer    int    `json:"odometer" yaml:"odometer" mapstructure:"odometer"`
	MPG         string `json:"mpg" yaml:"mpg" mapstructure:"mpg"`
}

// Input holds everything entered on a deal. Currency amounts are dollars,
// rates are percentages (5.0 means 5%).
type Input struct {
	Buyer        Buyer   `json:"buyer" yaml:"buyer" mapstructure:"buyer"`
	Vehicle      Vehicle `json:"vehicle" yaml:"vehicle" mapstructure:"vehicle"`
	TradeVehicle Vehicle `json:"tradeVehicle" yaml:"tradeVehicle" mapstructure:"tradeVehicle"`

	IsNewVehicle bool `json:"isNewVehicle" yaml:"isNewVehicle" mapstructure:"isNewVehicle"`

	AcquisitionCost    float64 `json:"acquisitionCost" yaml:"acquisitionCost" mapstructure:"acquisitionCost"`
	ReconditioningCost float64 `json:"reconditioningCost" yaml:"reconditioningCost" mapstructure:"reconditioningCost"`
	AdvertisingCost    float64 `json:"advertisingCost" yaml:"advertisingCost" mapstructure:"advertisingCost"`
	FlooringCost       float64 `json:"flooringCost" yaml:"flooringCost" mapstructure:"flooringCost"`

	SellingPrice  float64 `json:"sellingPrice" yaml:"sellingPrice" mapstructure:"sellingPrice"`
	ROIPercentage float64 `json:"roiPercentage" yaml:"roiPercentage" mapstructure:"roiPercentage"`

	HasTrade             bool            `json:"hasTrade" yaml:"hasTrade" mapstructure:"hasTrade"`
	TradeMarketValue     float64         `json:"tradeMarketValue" yaml:"tradeMarketValue" mapstructure:"tradeMarketValue"`
	TradePayOff          float64         `json:"tradePayOff" yaml:"tradePayOff" mapstructure:"tradePayOff"`
	TradeValue           float64         `json:"tradeValue" yaml:"tradeValue" mapstructure:"tradeValue"`
	TradeDevalueSelected []int           `json:"tradeDevalueSelected" yaml:"tradeDevalueSelected" mapstructure:"tradeDevalueSelected"`
	TradeDevalueItems    []CustomDevalue `json:"tradeDevalueItems" yaml:"tradeDevalueItems" mapstructure:"tradeDevalueItems"`
	TradeIsLease         bool            `json:"tradeIsLease" yaml:"tradeIsLease" mapstructure:"tradeIsLease"`

	DocFee          float64 `json:"docFee" yaml:"docFee" mapstructure:"docFee"`
	TitleFee        float64 `json:"titleFee" yaml:"titleFee" mapstructure:"titleFee"`
	TireFee         float64 `json:"tireFee" yaml:"tireFee" mapstructure:"tireFee"`
	OtherFee        float64 `json:"otherFee" yaml:"otherFee" mapstructure:"otherFee"`
	LicenseEstimate float64 `json:"licenseEstimate" yaml:"licenseEstimate" mapstructure:"licenseEstimate"`
	TaxRate         float64 `json:"taxRate" yaml:"taxRate" mapstructure:"taxRate"`

	Rebates float64 `json:"rebates" yaml:"rebates" mapstructure:"rebates"`

	BrakePlus         float64 `json:"brakePlus" yaml:"brakePlus" mapstructure:"brakePlus"`
	SafeGuard         float64 `json:"safeGuard" yaml:"safeGuard" mapstructure:"safeGuard"`
	ProtectionPackage float64 `json:"protectionPackage" yaml:"protectionPackage" mapstructure:"protectionPackage"`
	GapInsurance      float64 `json:"gapInsurance" yaml:"gapInsurance" mapstructure:"gapInsurance"`
	ServiceContract   float64 `json:"serviceContract" yaml:"serviceContract" mapstructure:"serviceContract"`

	InterestRate float64   `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	DownPayment  []float64 `json:"downPayment" yaml:"downPayment" mapstructure:"downPayment"`
	FinanceTerm  []int     `json:"financeTerm" yaml:"financeTerm" mapstructure:"financeTerm"`

	// LastChanged is "roi" when the caller last edited the ROI percentage.
	LastChanged string `json:"lastChanged,omitempty" yaml:"lastChanged,omitempty" mapstructure:"lastChanged"`
}

// FinanceRow is one down payment and term combination of the payment matrix.
type FinanceRow struct {
	Down            float64 `json:"down"`
	Term            int     `json:"term"`
	AmountFinanced  float64 `json:"amountFinanced"`
	Payment         float64 `json:"payment"`
	TotalOfPayments float64 `json:"totalOfPayments"`
	FinanceCharge   float64 `json:"financeCharge"`
}

// Sheet is the derived offer. It is recomputed from scratch on every call.
type Sheet struct {
	Mode Mode `json:"mode"`

	EffectiveReconditioning float64 `json:"effectiveReconditioning"`
	BaseInvestment          float64 `json:"baseInvestment"`
	SellingPrice            float64 `json:"sellingPrice"`
	BOTax                   float64 `json:"boTax"`
	DealershipInvestment    float64 `json:"dealershipInvestment"`
	Profit                  float64 `json:"profit"`
	ROIPercentage           float64 `json:"roiPercentage"`

	TotalTradeDevalue float64 `json:"totalTradeDevalue"`
	TradeValue        float64 `json:"tradeValue"`
	NetTrade          float64 `json:"netTrade"`

	TotalAddons   float64 `json:"totalAddons"`
	TaxableAmount float64 `json:"taxableAmount"`
	SalesTax      float64 `json:"salesTax"`
	// LineItemFees is title + tire + other. These are shown on the sheet but
	// are not part of TotalAmountFinanced.
	LineItemFees        float64 `json:"lineItemFees"`
	Rebates             float64 `json:"rebates"`
	TotalAmountFinanced float64 `json:"totalAmountFinanced"`

	FinanceTableRows []FinanceRow `json:"financeTableRows"`
}
