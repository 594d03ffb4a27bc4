package tax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnnaCarter465/tax-footprint/data"
)

const delta = 1e-6

func defaultRates(t *testing.T) *RateTable {
	t.Helper()

	rt, err := ParseRates(data.DefaultRates)
	require.NoError(t, err)

	return rt
}

func ptr(v float64) *float64 {
	return &v
}
