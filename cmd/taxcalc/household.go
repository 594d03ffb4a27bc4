package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AnnaCarter465/tax-footprint/data"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

// loadHousehold decodes a YAML household file over the defaults. An empty
// path yields the default household.
func loadHousehold(path string) (tax.Household, error) {
	h := tax.DefaultHousehold()

	if path == "" {
		return h, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read household file: %w", err)
	}

	if err := yaml.Unmarshal(content, &h); err != nil {
		return h, fmt.Errorf("parse household file %s: %w", path, err)
	}

	return h, nil
}

// loadRates reads the rate source at path, or the built-in one when path is
// empty.
func loadRates(path string) (*tax.RateTable, error) {
	if path == "" {
		return tax.ParseRates(data.DefaultRates)
	}

	return tax.LoadRates(path)
}
