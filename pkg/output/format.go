// Package output renders a derived offer for the command line.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/deal-calculator/internal/offer"
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is everything a rendered offer sheet shows.
type Report struct {
	Deal     offer.Input    `json:"deal"`
	Settings offer.Settings `json:"-"`
	Sheet    offer.Sheet    `json:"sheet"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Write renders the report in the named output format.
func Write(w io.Writer, outputFormat string, r Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

type line struct {
	label string
	value string
}

func vehicleTitle(v offer.Vehicle) string {
	var parts []string
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	for _, s := range []string{v.Make, v.Model, v.Trim} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	title := strings.Join(parts, " ")
	if title == "" {
		title = "vehicle"
	}
	if v.StockNumber != "" {
		title += " (stock " + v.StockNumber + ")"
	}
	return title
}

func sections(r Report) [][]line {
	in, s := r.Deal, r.Sheet

	investment := []line{
		{"Acquisition", format.Currency(in.AcquisitionCost)},
		{"Reconditioning", format.Currency(s.EffectiveReconditioning)},
		{"Advertising", format.Currency(in.AdvertisingCost)},
		{"Flooring", format.Currency(in.FlooringCost)},
		{"Base investment", format.Currency(s.BaseInvestment)},
		{"B&O tax", format.Currency(s.BOTax)},
		{"Dealership investment", format.Currency(s.DealershipInvestment)},
		{"Selling price", format.Currency(s.SellingPrice)},
		{"Profit", format.Currency(s.Profit)},
		{"ROI", format.Percent(s.ROIPercentage)},
	}

	var trade []line
	if in.HasTrade {
		trade = []line{
			{"Trade market value", format.Currency(in.TradeMarketValue)},
			{"Trade devaluation", format.Currency(s.TotalTradeDevalue)},
			{"Trade value (ACV)", format.Currency(s.TradeValue)},
			{"Trade payoff", format.Currency(in.TradePayOff)},
			{"Net trade", format.Currency(s.NetTrade)},
		}
		if in.TradeIsLease {
			trade = append(trade, line{"Trade is a lease", "not deducted from taxable amount"})
		}
	}

	addons := []line{
		{"Brake plus", format.Currency(in.BrakePlus)},
		{"SafeGuard", format.Currency(in.SafeGuard)},
	}
	if r.Settings.ShowProtectionPackage {
		addons = append(addons, line{"Protection package", format.Currency(in.ProtectionPackage)})
	}
	if r.Settings.ShowGapInsurance {
		addons = append(addons, line{"GAP insurance", format.Currency(in.GapInsurance)})
	}
	if r.Settings.ShowServiceContract {
		addons = append(addons, line{"Service contract", format.Currency(in.ServiceContract)})
	}
	addons = append(addons, line{"Total add-ons", format.Currency(s.TotalAddons)})

	totals := []line{
		{"Taxable amount", format.Currency(s.TaxableAmount)},
		{"Sales tax (" + format.Percent(in.TaxRate) + ")", format.Currency(s.SalesTax)},
		{"Doc fee", format.Currency(in.DocFee)},
		{"License estimate", format.Currency(in.LicenseEstimate)},
		{"Title/tire/other fees", format.Currency(s.LineItemFees)},
	}
	if in.IsNewVehicle {
		totals = append(totals, line{"Rebates", format.Currency(s.Rebates)})
	}
	totals = append(totals, line{"Total amount financed", format.Currency(s.TotalAmountFinanced)})

	return [][]line{investment, trade, addons, totals}
}

// PrettyFormat writes a human-readable rather than machine-readable offer sheet.
func PrettyFormat(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	ew.printf(p, "--- Offer for %s ---\n", vehicleTitle(r.Deal.Vehicle))
	if name := strings.TrimSpace(r.Deal.Buyer.Name); name != "" {
		ew.printf(p, "Buyer: %s\n", name)
	}
	ew.printf(p, "Mode: %s\n", r.Sheet.Mode)

	for _, section := range sections(r) {
		if len(section) == 0 {
			continue
		}
		ew.printf(p, "\n")
		for _, l := range section {
			ew.printf(p, "%-32s %16s\n", l.label, l.value)
		}
	}

	ew.printf(p, "\nDown          | Term | Amount Financed | Payment     | Total of Payments | Finance Charge\n")
	ew.printf(p, "____          | ____ | _______________ | _______     | _________________ | ______________\n")
	for _, row := range r.Sheet.FinanceTableRows {
		ew.printf(p, "%-13s | %4d | %15s | %-11s | %17s | %14s\n",
			format.Currency(row.Down),
			row.Term,
			format.Currency(row.AmountFinanced),
			format.Currency(row.Payment),
			format.Currency(row.TotalOfPayments),
			format.Currency(row.FinanceCharge),
		)
	}

	var notices []string
	if r.Settings.ShowWPFL {
		notices = append(notices, "WPFL")
	}
	if r.Settings.ShowOCFL {
		notices = append(notices, "OCFL")
	}
	if len(notices) > 0 {
		ew.printf(p, "\nDisclosures: %s\n", strings.Join(notices, ", "))
	}

	for _, warning := range r.Warnings {
		ew.printf(p, "warning: %s\n", warning)
	}
	return ew.err
}

// CsvFormat writes the sheet as label/value rows, a blank line, then the
// payment matrix.
func CsvFormat(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	s := r.Sheet

	rows := [][]string{
		{"field", "value"},
		{"mode", string(s.Mode)},
		{"baseInvestment", money(s.BaseInvestment)},
		{"sellingPrice", money(s.SellingPrice)},
		{"boTax", money(s.BOTax)},
		{"dealershipInvestment", money(s.DealershipInvestment)},
		{"profit", money(s.Profit)},
		{"roiPercentage", strconv.FormatFloat(s.ROIPercentage, 'f', 4, 64)},
		{"totalTradeDevalue", money(s.TotalTradeDevalue)},
		{"tradeValue", money(s.TradeValue)},
		{"netTrade", money(s.NetTrade)},
		{"totalAddons", money(s.TotalAddons)},
		{"taxableAmount", money(s.TaxableAmount)},
		{"salesTax", money(s.SalesTax)},
		{"lineItemFees", money(s.LineItemFees)},
		{"rebates", money(s.Rebates)},
		{"totalAmountFinanced", money(s.TotalAmountFinanced)},
		{},
		{"down", "term", "amountFinanced", "payment", "totalOfPayments", "financeCharge"},
	}
	for _, row := range s.FinanceTableRows {
		rows = append(rows, []string{
			money(row.Down),
			strconv.Itoa(row.Term),
			money(row.AmountFinanced),
			money(row.Payment),
			money(row.TotalOfPayments),
			money(row.FinanceCharge),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// JSONFormat writes the deal, sheet and warnings as indented JSON.
func JSONFormat(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(p *message.Printer, msg string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = p.Fprintf(e.w, msg, args...)
}
