// Package data holds the bundled rate source shipped with the service.
package data

import _ "embed"

// DefaultRates is the 2024/25 rate source. It seeds TAX_RATES_PATH when the
// file does not exist yet.
//
//go:embed tax_rates.yml
var DefaultRates []byte
