// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config, deal files and the
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/deal-calculator/internal/offer"
	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override config values,
// e.g. DEAL_LOGGING_LEVEL=debug.
const EnvPrefix = "DEAL"

// Configuration holds all configuration for deal-calculator.
type Configuration struct {
	Dealer  offer.Settings `yaml:"dealer"`
	Deal    offer.Input    `yaml:"deal"`
	Logging LoggingConfig  `yaml:"logging,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Default returns the configuration used when a file leaves a section out:
// the default dealer settings and the demo deal.
func Default() *Configuration {
	settings := offer.DefaultSettings()
	return &Configuration{
		Dealer: settings,
		Deal:   offer.NewDemoInput(settings),
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return fromViper(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return fromViper(v)
}

// fromViper decodes each section over its defaults. The deal section is
// layered on a demo deal built from the decoded dealer settings so the
// dealer's default interest rate carries through.
func fromViper(v *viper.Viper) (*Configuration, error) {
	all := v.AllSettings()
	conf := Default()

	if raw, ok := all["dealer"]; ok {
		if err := Decode(raw, &conf.Dealer); err != nil {
			return nil, fmt.Errorf("unable to decode dealer section: %w", err)
		}
		conf.Deal = offer.NewDemoInput(conf.Dealer)
	}
	if raw, ok := all["deal"]; ok {
		if err := Decode(raw, &conf.Deal); err != nil {
			return nil, fmt.Errorf("unable to decode deal section: %w", err)
		}
	}
	if raw, ok := all["logging"]; ok {
		if err := Decode(raw, &conf.Logging); err != nil {
			return nil, fmt.Errorf("unable to decode logging section: %w", err)
		}
	}
	if raw, ok := all["output"]; ok {
		if err := Decode(raw, &conf.Output); err != nil {
			return nil, fmt.Errorf("unable to decode output section: %w", err)
		}
	}

	return conf, nil
}

// LoadDeal reads a single deal from a YAML or JSON file. Fields the file
// leaves out take the values of a blank deal for the given dealer settings.
func LoadDeal(path string, settings offer.Settings) (offer.Input, error) {
	in := offer.NewInput(settings)

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return in, fmt.Errorf("error reading deal file: %w", err)
	}
	if err := Decode(v.AllSettings(), &in); err != nil {
		return in, fmt.Errorf("unable to decode deal file %s: %w", path, err)
	}
	return in, nil
}

// LoadEnv loads variables from a .env file into the process environment.
// Variables already set are left alone and a missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		path = constants.DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if c.Dealer.PriceIncrement < 0 {
		warnings = append(warnings, fmt.Sprintf("dealer.priceIncrement %.2f is negative; whole dollars are used instead", c.Dealer.PriceIncrement))
	}
	for i, item := range c.Dealer.TradeDevalueItems {
		if w := validation.ValidateNonNegative(fmt.Sprintf("dealer.tradeDevalueItems[%d].price", i), item.Price); w != "" {
			warnings = append(warnings, w)
		}
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	for _, w := range offer.Check(c.Deal, c.Dealer) {
		warnings = append(warnings, "deal: "+w)
	}
	return warnings
}
