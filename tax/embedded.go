package tax

import (
	"strings"
	"unicode"
)

type industry string

const (
	labourIntensive industry = "labour_intensive"
	manufacturing   industry = "manufacturing"
	retail          industry = "retail"
	services        industry = "services"
	technology      industry = "technology"
	weightedAverage industry = "weighted_average"
)

// Share of consumer prices attributable to corporate taxes, per industry.
// These are estimates and are not part of the rate source.
var embeddedRates = map[industry]float64{
	labourIntensive: 0.17,
	manufacturing:   0.13,
	retail:          0.10,
	services:        0.15,
	technology:      0.08,
	weightedAverage: 0.12,
}

var spendIndustry = map[string]industry{
	"groceries":             retail,
	"restaurants":           labourIntensive,
	"clothing":              manufacturing,
	"electronics":           manufacturing,
	"online_shopping":       technology,
	"professional_services": services,
	"entertainment":         labourIntensive,
	"general":               weightedAverage,
}

type embeddedComponent struct {
	category Category
	weight   float64
}

// embeddedComponents must sum to 1.
var embeddedComponents = []embeddedComponent{
	{EmbeddedCorporateIncomeTax, 0.40},
	{EmbeddedEmployerContributions, 0.15},
	{EmbeddedTaxAdministration, 0.10},
	{EmbeddedRegulatoryCompliance, 0.20},
	{EmbeddedSupplyChainCascade, 0.15},
}

// EmbeddedCorporateTaxes estimates the corporate taxes hidden in consumer
// prices, using standard-rated spend as a proxy for consumption, and splits
// the estimate into its components.
func EmbeddedCorporateTaxes(c Consumption) Breakdown {
	result := make(Breakdown)

	total := TotalEmbedded(c)
	if total <= 0 {
		return result
	}

	for _, comp := range embeddedComponents {
		result[comp.category] = total * comp.weight
	}

	return result
}

// TotalEmbedded is the unsplit estimate.
func TotalEmbedded(c Consumption) float64 {
	return c.StdVATSpendMonth * monthsPerYear * embeddedRates[weightedAverage]
}

// EmbeddedByIndustry estimates embedded taxes per spending category from
// annual spend. Unknown categories use the economy-wide average; categories
// with no spend are left out.
func EmbeddedByIndustry(annualSpend map[string]float64) map[string]float64 {
	result := make(map[string]float64)

	for category, spend := range annualSpend {
		if spend <= 0 {
			continue
		}

		ind, ok := spendIndustry[category]
		if !ok {
			ind = weightedAverage
		}

		result["Embedded Tax: "+titleCase(category)] = spend * embeddedRates[ind]
	}

	return result
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, so "online_shopping" becomes "Online_Shopping".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}

	return b.String()
}
