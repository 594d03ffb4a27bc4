package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlcoholExcise(t *testing.T) {
	rt := defaultRates(t)

	t.Run("beer 20 litres at 5%", func(t *testing.T) {
		got := AlcoholExcise(rt, Consumption{BeerLitresMonth: 20, BeerAvgABV: 5})

		assertBreakdown(t, Breakdown{BeerExcise: 20 * 0.05 * 121.41 * 12}, got)
	})

	t.Run("wine ignores abv", func(t *testing.T) {
		for _, abv := range []float64{0, 9, 12.5, 20, 100} {
			got := AlcoholExcise(rt, Consumption{WineLitresMonth: 6, WineAvgABV: abv})

			assertBreakdown(t, Breakdown{WineExcise: 6 * 4.96 * 12}, got)
		}
	})

	t.Run("beer and spirits scale linearly with abv", func(t *testing.T) {
		base := AlcoholExcise(rt, Consumption{BeerLitresMonth: 10, BeerAvgABV: 4, SpiritsLitresMonth: 1, SpiritsAvgABV: 20})
		doubled := AlcoholExcise(rt, Consumption{BeerLitresMonth: 10, BeerAvgABV: 8, SpiritsLitresMonth: 1, SpiritsAvgABV: 40})

		assert.InDelta(t, 2*base[BeerExcise], doubled[BeerExcise], delta)
		assert.InDelta(t, 2*base[SpiritsExcise], doubled[SpiritsExcise], delta)
		assert.InDelta(t, 1*0.20*249.20*12, base[SpiritsExcise], delta)
	})

	t.Run("no alcohol", func(t *testing.T) {
		assert.Empty(t, AlcoholExcise(rt, DefaultConsumption()))
	})
}

func TestTobaccoExcise(t *testing.T) {
	type TC struct {
		name        string
		consumption Consumption
		want        Breakdown
	}

	tcs := []TC{
		{
			name:        "cheap packs pay specific excise",
			consumption: Consumption{CigarettePacks20Month: 10, CigaretteAvgPricePerPack: 60},
			want:        Breakdown{CigaretteExcise: 10 * 18.22 * 12},
		},
		{
			name:        "expensive packs pay ad valorem",
			consumption: Consumption{CigarettePacks20Month: 10, CigaretteAvgPricePerPack: 61},
			want:        Breakdown{CigaretteExcise: 10 * 61 * 0.30 * 12},
		},
		{
			name:        "cigars and pipe tobacco",
			consumption: Consumption{CigarsGramsMonth: 10, PipeTobaccoGramsMonth: 50},
			want:        Breakdown{CigarExcise: 10 * 10.96 * 12, PipeTobaccoExcise: 50 * 5.44 * 12},
		},
		{
			name:        "price without packs",
			consumption: Consumption{CigaretteAvgPricePerPack: 45},
			want:        Breakdown{},
		},
	}

	rt := defaultRates(t)

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assertBreakdown(t, tc.want, TobaccoExcise(rt, tc.consumption))
		})
	}
}

func TestCigaretteBreakeven(t *testing.T) {
	rt := defaultRates(t)

	breakeven := rt.CigaretteExcisePer20 / rt.CigaretteAdValoremRate
	assert.InDelta(t, 60.73, breakeven, 0.01)

	below := rt.monthlyCigaretteExcise(1, breakeven-0.01)
	above := rt.monthlyCigaretteExcise(1, breakeven+0.01)

	assert.Equal(t, rt.CigaretteExcisePer20, below)
	assert.InDelta(t, (breakeven+0.01)*rt.CigaretteAdValoremRate, above, delta)
	assert.Greater(t, above, below)
}
