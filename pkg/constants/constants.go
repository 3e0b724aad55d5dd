// Package constants provides shared constants for the deal-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CentPlaces is the number of decimal places kept on currency values
	CentPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PercentTolerance is the tolerance for percentage comparisons (0.01 points)
	PercentTolerance = 0.01

	// MaxTermMonths is the longest loan term the API will amortize (50 years)
	MaxTermMonths = 600

	// MaxFinanceTableRows caps the down payment by term matrix of one offer
	MaxFinanceTableRows = 400
)

// Dealer pricing constants
const (
	// BOTaxRate is the business-and-occupation excise applied to the selling price.
	BOTaxRate = 0.00471

	// DefaultBrakePlus is the brake plan price included on every deal.
	DefaultBrakePlus = 499.0

	// DefaultSafeGuard is the safeguard plan price included on every deal.
	DefaultSafeGuard = 249.0

	// DefaultInterestRate is the annual rate offered when the dealer has not configured one.
	DefaultInterestRate = 6.99

	// DefaultPriceIncrement rounds ROI-derived selling prices up to whole dollars.
	DefaultPriceIncrement = 1.0

	// CentPriceIncrement rounds ROI-derived selling prices up to the cent.
	CentPriceIncrement = 0.01
)

// Reconciliation modes
const (
	// LastChangedROI marks ROI as the authoritative value for a recomputation.
	LastChangedROI = "roi"

	// ModePrice is the price-authoritative mode name.
	ModePrice = "price"

	// ModeROI is the ROI-authoritative mode name.
	ModeROI = "roi"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is the optional dotenv file loaded before configuration
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
