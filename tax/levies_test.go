package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOtherLevies(t *testing.T) {
	type TC struct {
		name        string
		consumption Consumption
		travel      Travel
		want        Breakdown
	}

	tcs := []TC{
		{
			name:        "tyres and tv licences",
			consumption: Consumption{TyresPurchasedPerYear: 4, TyreAvgWeightKg: 10, TVLicensesCount: 2},
			want:        Breakdown{TyreLevy: 4 * 10 * 2.30, TVLicense: 2 * 265},
		},
		{
			name:        "imported consumer goods",
			consumption: Consumption{MonthlyImportedGoodsSpend: 1_000, ImportedGoodsAvgDutyRate: 0.20},
			want:        Breakdown{ImportDutiesConsumerGoods: 2_400},
		},
		{
			name:        "online purchases pay vat on goods plus duty",
			consumption: Consumption{MonthlyInternationalOnlineSpend: 1_000},
			want:        Breakdown{ImportDutiesOnline: 2_400, ImportVATOnline: 14_400 * 0.15},
		},
		{
			name:   "flights and accommodation",
			travel: Travel{DomesticFlightsPerYear: 2, InternationalFlightsPerYear: 1, AnnualAccommodationSpend: 20_000},
			want: Breakdown{
				AirportTaxesDomestic:      2 * (100 + 25),
				AirportTaxesInternational: 190 + 75 + 30,
				AccommodationTourismLevy:  200,
			},
		},
		{
			name:        "defaults alone produce nothing",
			consumption: DefaultConsumption(),
			want:        Breakdown{},
		},
	}

	rt := defaultRates(t)

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assertBreakdown(t, tc.want, OtherLevies(rt, tc.consumption, tc.travel))
		})
	}
}

func TestOtherLeviesOnlineWithoutDuty(t *testing.T) {
	rt := defaultRates(t)
	rt.ImportDutyWeightedAvg = 0

	got := OtherLevies(rt, Consumption{MonthlyInternationalOnlineSpend: 1_000}, Travel{})

	assertBreakdown(t, Breakdown{ImportVATOnline: 12_000 * 0.15}, got)
}

func TestMunicipalServices(t *testing.T) {
	got := MunicipalServices(TransportProperty{
		MunicipalWaterMonthly:  400,
		MunicipalRefuseMonthly: 250,
	})

	assertBreakdown(t, Breakdown{MunicipalWater: 4_800, MunicipalRefuse: 3_000}, got)
	assert.Empty(t, MunicipalServices(TransportProperty{}))
}
