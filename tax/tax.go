package tax

import (
	"fmt"
	"sort"
)

// TotalLabel names the synthetic last row of a summary.
const TotalLabel = "TOTAL"

// Run applies every calculator to the household and merges their lines. It
// never fails for valid input; a category produced twice is a programming
// error and panics.
func Run(r *RateTable, p Personal, c Consumption, tp TransportProperty, inv Investment, t Travel) (Breakdown, float64) {
	parts := []Breakdown{
		IncomeTaxes(r, p),
		IndirectTaxes(r, c),
		AlcoholExcise(r, c),
		TobaccoExcise(r, c),
		PropertyTransportTaxes(r, tp),
		InvestmentTaxes(r, inv),
		EmbeddedCorporateTaxes(c),
		OtherLevies(r, c, t),
		MunicipalServices(tp),
	}

	breakdown := make(Breakdown)

	for _, part := range parts {
		for category, amount := range part {
			if _, ok := breakdown[category]; ok {
				panic(fmt.Sprintf("tax: category %q produced by more than one calculator", category.Label()))
			}

			breakdown[category] = amount
		}
	}

	return breakdown, breakdown.Total()
}

type Result struct {
	Breakdown     Breakdown
	Total         float64
	GrossIncome   float64
	EffectiveRate float64
	MonthlyTotal  float64
}

// Calculate runs the engine for a household and derives the effective rate
// against gross income, as a percentage.
func Calculate(r *RateTable, h Household) Result {
	breakdown, total := Run(r, h.Personal, h.Consumption, h.TransportProperty, h.Investment, h.Travel)

	gross := h.Personal.GrossIncome()

	var effective float64
	if gross > 0 {
		effective = total / gross * 100
	}

	return Result{
		Breakdown:     breakdown,
		Total:         total,
		GrossIncome:   gross,
		EffectiveRate: effective,
		MonthlyTotal:  total / monthsPerYear,
	}
}

type SummaryRow struct {
	Category string  `json:"category"`
	Annual   float64 `json:"annual"`
	Monthly  float64 `json:"monthly"`
	Note     string  `json:"note,omitempty"`
}

// Summary lists the breakdown from largest to smallest, with ties ordered by
// label, and appends a TOTAL row. Each category row carries its note.
func Summary(b Breakdown, total float64) []SummaryRow {
	rows := make([]SummaryRow, 0, len(b)+1)

	for category, amount := range b {
		rows = append(rows, SummaryRow{
			Category: category.Label(),
			Annual:   amount,
			Monthly:  amount / monthsPerYear,
			Note:     category.Note(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Annual != rows[j].Annual {
			return rows[i].Annual > rows[j].Annual
		}
		return rows[i].Category < rows[j].Category
	})

	return append(rows, SummaryRow{
		Category: TotalLabel,
		Annual:   total,
		Monthly:  total / monthsPerYear,
	})
}
