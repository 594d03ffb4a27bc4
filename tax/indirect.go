package tax

import "math"

// IndirectTaxes covers VAT, fuel levies, the electricity levy, the Health
// Promotion Levy and the plastic bag levy. Each line is emitted only when its
// input is positive.
func IndirectTaxes(r *RateTable, c Consumption) Breakdown {
	result := make(Breakdown)

	if c.StdVATSpendMonth > 0 {
		result[VAT] = c.StdVATSpendMonth * r.VATRate * monthsPerYear
	}

	if c.LitresPetrolMonth > 0 || c.LitresDieselMonth > 0 {
		petrol := c.LitresPetrolMonth * (r.FuelGFLPetrol + r.FuelRAF + r.FuelCarbonPetrol)
		diesel := c.LitresDieselMonth * (r.FuelGFLDiesel + r.FuelRAF + r.FuelCarbonDiesel)
		result[FuelLevies] = (petrol + diesel) * monthsPerYear
	}

	if c.ElectricityKWhMonth > 0 {
		result[ElectricityLevy] = c.ElectricityKWhMonth * r.ElectricityEnvLevy * monthsPerYear
	}

	if c.SugaryDrinkLitresMonth > 0 {
		excessGrams := math.Max(0, c.SugaryAvgGPer100ml-r.HPLThresholdGPer100ml)
		if excessGrams > 0 {
			units := c.SugaryDrinkLitresMonth * 10 // 100ml units
			result[HealthPromotionLevy] = units * excessGrams * r.HPLPerGramOverThreshold * monthsPerYear
		}
	}

	if c.PlasticBagsPerMonth > 0 {
		result[PlasticBagLevy] = float64(c.PlasticBagsPerMonth) * r.PlasticBagLevy * monthsPerYear
	}

	return result
}
