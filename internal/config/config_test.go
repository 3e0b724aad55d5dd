package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/deal-calculator/internal/offer"
)

const sampleConfig = `
dealer:
  tradeDevalueItems:
    - label: Tires
      price: 450
    - label: Dents
      price: "$1,200"
  showGapInsurance: true
  defaultInterestRate: 5.49
  priceIncrement: 0.01
deal:
  buyer:
    name: Casey Buyer
  vehicle:
    year: 2019
    make: Honda
  acquisitionCost: "$18,000"
  reconditioningCost: ""
  taxRate: "9.5%"
  downPayment: [500]
  financeTerm: [60, "72"]
logging:
  level: warn
  format: console
output:
  format: csv
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeFile(t, "config.yaml", sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	t.Run("dealer", func(t *testing.T) {
		want := []offer.DevalueItem{{Label: "Tires", Price: 450}, {Label: "Dents", Price: 1200}}
		if !reflect.DeepEqual(conf.Dealer.TradeDevalueItems, want) {
			t.Errorf("TradeDevalueItems = %+v, want %+v", conf.Dealer.TradeDevalueItems, want)
		}
		if !conf.Dealer.ShowGapInsurance {
			t.Error("expected ShowGapInsurance to be true")
		}
		if conf.Dealer.ShowServiceContract {
			t.Error("expected ShowServiceContract to stay false")
		}
		if conf.Dealer.DefaultInterestRate != 5.49 {
			t.Errorf("DefaultInterestRate = %v, want 5.49", conf.Dealer.DefaultInterestRate)
		}
		if conf.Dealer.PriceIncrement != 0.01 {
			t.Errorf("PriceIncrement = %v, want 0.01", conf.Dealer.PriceIncrement)
		}
	})

	t.Run("deal", func(t *testing.T) {
		if conf.Deal.Buyer.Name != "Casey Buyer" {
			t.Errorf("Buyer.Name = %q", conf.Deal.Buyer.Name)
		}
		if conf.Deal.Vehicle.Year != 2019 || conf.Deal.Vehicle.Make != "Honda" {
			t.Errorf("Vehicle = %+v", conf.Deal.Vehicle)
		}
		if conf.Deal.AcquisitionCost != 18000 {
			t.Errorf("AcquisitionCost = %v, want 18000", conf.Deal.AcquisitionCost)
		}
		if conf.Deal.ReconditioningCost != 0 {
			t.Errorf("ReconditioningCost = %v, want blank to read as 0", conf.Deal.ReconditioningCost)
		}
		if conf.Deal.TaxRate != 9.5 {
			t.Errorf("TaxRate = %v, want 9.5", conf.Deal.TaxRate)
		}
		if !reflect.DeepEqual(conf.Deal.DownPayment, []float64{500}) {
			t.Errorf("DownPayment = %v, want [500]", conf.Deal.DownPayment)
		}
		if !reflect.DeepEqual(conf.Deal.FinanceTerm, []int{60, 72}) {
			t.Errorf("FinanceTerm = %v, want [60 72]", conf.Deal.FinanceTerm)
		}
		// Untouched fields keep the demo deal's values.
		demo := offer.NewDemoInput(conf.Dealer)
		if conf.Deal.SellingPrice != demo.SellingPrice {
			t.Errorf("SellingPrice = %v, want demo value %v", conf.Deal.SellingPrice, demo.SellingPrice)
		}
		if conf.Deal.InterestRate != 5.49 {
			t.Errorf("InterestRate = %v, want dealer default 5.49", conf.Deal.InterestRate)
		}
	})

	t.Run("logging and output", func(t *testing.T) {
		if conf.Logging.Level != "warn" || conf.Logging.Format != "console" {
			t.Errorf("Logging = %+v", conf.Logging)
		}
		if conf.Output.Format != "csv" {
			t.Errorf("Output.Format = %q, want csv", conf.Output.Format)
		}
	})
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	_, err := LoadConfiguration(writeFile(t, "config.yaml", "dealer: [unclosed"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("output:\n  format: json\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader failed: %v", err)
	}
	def := Default()
	if !reflect.DeepEqual(conf.Dealer, def.Dealer) {
		t.Errorf("Dealer = %+v, want defaults %+v", conf.Dealer, def.Dealer)
	}
	if !reflect.DeepEqual(conf.Deal, def.Deal) {
		t.Errorf("Deal = %+v, want demo deal %+v", conf.Deal, def.Deal)
	}
	if conf.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", conf.Output.Format)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("DEAL_LOGGING_LEVEL", "debug")

	conf, err := LoadConfiguration(writeFile(t, "config.yaml", sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want the environment override debug", conf.Logging.Level)
	}
}

func TestLoadDeal(t *testing.T) {
	settings := offer.DefaultSettings()
	settings.DefaultInterestRate = 4.25

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "deal.yaml",
			content: `
acquisitionCost: 15000
sellingPrice: "17,995"
hasTrade: true
tradeMarketValue: 4000
tradeDevalueSelected: [0, 2]
lastChanged: roi
roiPercentage: 8
`,
		},
		{
			name: "json",
			file: "deal.json",
			content: `{
  "acquisitionCost": 15000,
  "sellingPrice": "17,995",
  "hasTrade": true,
  "tradeMarketValue": 4000,
  "tradeDevalueSelected": [0, 2],
  "lastChanged": "roi",
  "roiPercentage": "8"
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := LoadDeal(writeFile(t, tt.file, tt.content), settings)
			if err != nil {
				t.Fatalf("LoadDeal failed: %v", err)
			}
			if in.AcquisitionCost != 15000 || in.SellingPrice != 17995 {
				t.Errorf("costs = %v / %v", in.AcquisitionCost, in.SellingPrice)
			}
			if !in.HasTrade || in.TradeMarketValue != 4000 {
				t.Errorf("trade = %v / %v", in.HasTrade, in.TradeMarketValue)
			}
			if !reflect.DeepEqual(in.TradeDevalueSelected, []int{0, 2}) {
				t.Errorf("TradeDevalueSelected = %v", in.TradeDevalueSelected)
			}
			if offer.ModeFor(in) != offer.ModeROI || in.ROIPercentage != 8 {
				t.Errorf("mode = %v roi = %v", offer.ModeFor(in), in.ROIPercentage)
			}
			// Blank deal defaults fill the rest.
			if in.InterestRate != 4.25 {
				t.Errorf("InterestRate = %v, want 4.25", in.InterestRate)
			}
			if in.BrakePlus != 499 || in.SafeGuard != 249 {
				t.Errorf("add-ons = %v / %v, want 499 / 249", in.BrakePlus, in.SafeGuard)
			}
			if !reflect.DeepEqual(in.FinanceTerm, []int{36, 48, 60, 72}) {
				t.Errorf("FinanceTerm = %v", in.FinanceTerm)
			}
		})
	}
}

func TestLoadDealMissingFile(t *testing.T) {
	_, err := LoadDeal(filepath.Join(t.TempDir(), "nope.yaml"), offer.DefaultSettings())
	if err == nil {
		t.Fatal("expected an error for a missing deal file")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("LoadEnv returned %v for a missing file", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		const key = "DEAL_CALCULATOR_TEST_ENV"
		t.Cleanup(func() { _ = os.Unsetenv(key) })

		path := writeFile(t, ".env", key+"=loaded\n")
		if err := LoadEnv(path); err != nil {
			t.Fatalf("LoadEnv failed: %v", err)
		}
		if got := os.Getenv(key); got != "loaded" {
			t.Errorf("%s = %q, want loaded", key, got)
		}
	})
}

func TestValidateConfiguration(t *testing.T) {
	conf := Default()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("default configuration produced warnings: %v", warnings)
	}

	conf.Dealer.PriceIncrement = -1
	conf.Dealer.TradeDevalueItems = append(conf.Dealer.TradeDevalueItems, offer.DevalueItem{Label: "Bad", Price: -5})
	conf.Output.Format = "xml"
	conf.Deal.TradeDevalueSelected = []int{99}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.HasPrefix(warnings[3], "deal: ") {
		t.Errorf("deal warnings should be prefixed, got %q", warnings[3])
	}
}
