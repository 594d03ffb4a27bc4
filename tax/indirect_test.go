package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndirectTaxes(t *testing.T) {
	type TC struct {
		name        string
		consumption Consumption
		want        Breakdown
	}

	tcs := []TC{
		{
			name:        "vat on standard rated spend",
			consumption: Consumption{StdVATSpendMonth: 10_000, ZeroVATSpendMonth: 3_000},
			want:        Breakdown{VAT: 18_000},
		},
		{
			name:        "petrol and diesel",
			consumption: Consumption{LitresPetrolMonth: 100, LitresDieselMonth: 50},
			want:        Breakdown{FuelLevies: (100*(4.01+2.18+0.14) + 50*(3.85+2.18+0.17)) * 12},
		},
		{
			name:        "electricity",
			consumption: Consumption{ElectricityKWhMonth: 500},
			want:        Breakdown{ElectricityLevy: 500 * 0.035 * 12},
		},
		{
			name:        "sugar above threshold",
			consumption: Consumption{SugaryDrinkLitresMonth: 10, SugaryAvgGPer100ml: 10},
			want:        Breakdown{HealthPromotionLevy: 10 * 10 * 6 * 0.021 * 12},
		},
		{
			name:        "sugar at threshold",
			consumption: Consumption{SugaryDrinkLitresMonth: 10, SugaryAvgGPer100ml: 4},
			want:        Breakdown{},
		},
		{
			name:        "plastic bags",
			consumption: Consumption{PlasticBagsPerMonth: 20},
			want:        Breakdown{PlasticBagLevy: 20 * 0.32 * 12},
		},
		{
			name:        "nothing consumed",
			consumption: DefaultConsumption(),
			want:        Breakdown{},
		},
	}

	rt := defaultRates(t)

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := IndirectTaxes(rt, tc.consumption)

			assertBreakdown(t, tc.want, got)
		})
	}
}

func assertBreakdown(t *testing.T, want, got Breakdown) {
	t.Helper()

	assert.Len(t, got, len(want))

	for c, v := range want {
		if assert.Contains(t, got, c) {
			assert.InDelta(t, v, got[c], delta, c.Label())
		}
	}
}
