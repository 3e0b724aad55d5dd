package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/deal-calculator/internal/config"
	"github.com/iwvelando/deal-calculator/internal/offer"
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/output"
	"github.com/iwvelando/deal-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	envLocation := flag.String("env-file", constants.DefaultEnvFile, "optional .env file loaded before the configuration")
	dealLocation := flag.String("deal", "", "optional YAML or JSON deal file replacing the configured deal")
	modeFlag := flag.String("mode", "", "authoritative value: price or roi (default from the deal's lastChanged)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadEnv(*envLocation); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envLocation, err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	deal := conf.Deal
	if *dealLocation != "" {
		deal, err = config.LoadDeal(*dealLocation, conf.Dealer)
		if err != nil {
			logger.Fatal("failed to load deal",
				zap.String("op", "main"),
				zap.String("path", *dealLocation),
				zap.Error(err),
			)
		}
	}

	mode := offer.ModeFor(deal)
	if *modeFlag != "" {
		mode, err = offer.ParseMode(*modeFlag)
		if err != nil {
			logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}
	}

	// Warnings never block the derivation.
	conf.Deal = deal
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	sheet := offer.NewCalculator(logger).Derive(deal, conf.Dealer, mode)

	report := output.Report{
		Deal:     deal,
		Settings: conf.Dealer,
		Sheet:    sheet,
		Warnings: warnings,
	}
	if err := output.Write(os.Stdout, outputFormat, report); err != nil {
		logger.Fatal("failed to write offer",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
