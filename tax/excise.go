package tax

import "math"

// AlcoholExcise charges beer and spirits on litres of absolute alcohol and
// wine on volume. Wine ABV is deliberately not a factor.
func AlcoholExcise(r *RateTable, c Consumption) Breakdown {
	result := make(Breakdown)

	if c.BeerLitresMonth > 0 {
		result[BeerExcise] = absoluteAlcohol(c.BeerLitresMonth, c.BeerAvgABV) * r.BeerExcisePerLAA * monthsPerYear
	}

	if c.WineLitresMonth > 0 {
		result[WineExcise] = c.WineLitresMonth * r.WineExcisePerLitre * monthsPerYear
	}

	if c.SpiritsLitresMonth > 0 {
		result[SpiritsExcise] = absoluteAlcohol(c.SpiritsLitresMonth, c.SpiritsAvgABV) * r.SpiritsExcisePerLAA * monthsPerYear
	}

	return result
}

func absoluteAlcohol(litres, abvPercent float64) float64 {
	return litres * (abvPercent / 100)
}

// TobaccoExcise charges cigarettes the higher of specific and ad valorem
// excise, and cigars and pipe tobacco per gram.
func TobaccoExcise(r *RateTable, c Consumption) Breakdown {
	result := make(Breakdown)

	if c.CigarettePacks20Month > 0 {
		result[CigaretteExcise] = r.monthlyCigaretteExcise(c.CigarettePacks20Month, c.CigaretteAvgPricePerPack) * monthsPerYear
	}

	if c.CigarsGramsMonth > 0 {
		result[CigarExcise] = c.CigarsGramsMonth * r.CigarExcisePerGram * monthsPerYear
	}

	if c.PipeTobaccoGramsMonth > 0 {
		result[PipeTobaccoExcise] = c.PipeTobaccoGramsMonth * r.PipeTobaccoExcisePerGram * monthsPerYear
	}

	return result
}

// monthlyCigaretteExcise takes the max per month, before annualising.
func (r *RateTable) monthlyCigaretteExcise(packs int, pricePerPack float64) float64 {
	specific := float64(packs) * r.CigaretteExcisePer20
	adValorem := float64(packs) * pricePerPack * r.CigaretteAdValoremRate

	return math.Max(specific, adValorem)
}
