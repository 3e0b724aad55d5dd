package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

var numberNoise = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// LenientNumberHook converts strings headed for numeric fields into numbers.
// Currency symbols, thousands separators and percent signs are dropped first.
// Blank or unparseable strings become 0.
func LenientNumberHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := numberNoise.Replace(data.(string))

		switch to.Kind() {
		case reflect.Float32, reflect.Float64:
			return parseNumber(raw), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return int64(math.Round(parseNumber(raw))), nil
		default:
			return data, nil
		}
	}
}

func parseNumber(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DecodeHook is the hook chain used for configuration files, deal files and
// API payloads.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		LenientNumberHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func decoderOptions(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = DecodeHook()
	dc.WeaklyTypedInput = true
	// Lists present in the input replace the defaults instead of merging
	// element by element.
	dc.ZeroFields = true
}

// Decode copies loosely typed input (a parsed YAML or JSON document) onto
// out. Fields absent from input keep whatever out already holds.
func Decode(input interface{}, out interface{}) error {
	dc := &mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	}
	decoderOptions(dc)

	decoder, err := mapstructure.NewDecoder(dc)
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}
