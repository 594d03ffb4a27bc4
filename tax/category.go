package tax

import (
	"fmt"
	"sort"
)

// Category identifies one line of a breakdown. Each calculator owns a fixed
// set of categories, so two calculators can never write the same line.
type Category int

const (
	PAYE Category = iota
	UIF

	VAT
	FuelLevies
	ElectricityLevy
	HealthPromotionLevy
	PlasticBagLevy

	BeerExcise
	WineExcise
	SpiritsExcise

	CigaretteExcise
	CigarExcise
	PipeTobaccoExcise

	VehicleLicenseFees
	TollFees
	MunicipalRates
	TransferDuty
	VehicleImportDuty

	DividendsTax
	CapitalGainsTax

	EmbeddedCorporateIncomeTax
	EmbeddedEmployerContributions
	EmbeddedTaxAdministration
	EmbeddedRegulatoryCompliance
	EmbeddedSupplyChainCascade

	TyreLevy
	TVLicense
	ImportDutiesConsumerGoods
	ImportVATOnline
	ImportDutiesOnline
	AirportTaxesDomestic
	AirportTaxesInternational
	AccommodationTourismLevy

	MunicipalWater
	MunicipalSewerage
	MunicipalRefuse
	MunicipalOther

	numCategories
)

var categoryLabels = [numCategories]string{
	PAYE:                          "PAYE (Income Tax)",
	UIF:                           "UIF",
	VAT:                           "VAT",
	FuelLevies:                    "Fuel Levies",
	ElectricityLevy:               "Electricity Environmental Levy",
	HealthPromotionLevy:           "Health Promotion Levy (Sugar Tax)",
	PlasticBagLevy:                "Plastic Bag Levy",
	BeerExcise:                    "Beer Excise",
	WineExcise:                    "Wine Excise",
	SpiritsExcise:                 "Spirits Excise",
	CigaretteExcise:               "Cigarette Excise",
	CigarExcise:                   "Cigar Excise",
	PipeTobaccoExcise:             "Pipe Tobacco Excise",
	VehicleLicenseFees:            "Vehicle License Fees",
	TollFees:                      "Toll Fees",
	MunicipalRates:                "Municipal Rates & Services",
	TransferDuty:                  "Transfer Duty (One-time)",
	VehicleImportDuty:             "Vehicle Import Duty (in installments)",
	DividendsTax:                  "Dividends Tax",
	CapitalGainsTax:               "Capital Gains Tax",
	EmbeddedCorporateIncomeTax:    "Corporate Income Tax (embedded)",
	EmbeddedEmployerContributions: "SDL/UIF Employer Contribution (embedded)",
	EmbeddedTaxAdministration:     "Tax Administration Costs (embedded)",
	EmbeddedRegulatoryCompliance:  "Regulatory Compliance Costs (embedded)",
	EmbeddedSupplyChainCascade:    "Supply Chain Tax Cascade (embedded)",
	TyreLevy:                      "Tyre Levy",
	TVLicense:                     "TV License",
	ImportDutiesConsumerGoods:     "Import Duties (Consumer Goods)",
	ImportVATOnline:               "Import VAT (Online Purchases)",
	ImportDutiesOnline:            "Import Duties (Online Purchases)",
	AirportTaxesDomestic:          "Airport Taxes (Domestic)",
	AirportTaxesInternational:     "Airport Taxes & Tourism Levy (International)",
	AccommodationTourismLevy:      "Accommodation Tourism Levy",
	MunicipalWater:                "Municipal Water Charges",
	MunicipalSewerage:             "Municipal Sewerage Charges",
	MunicipalRefuse:               "Municipal Refuse Removal",
	MunicipalOther:                "Other Municipal Charges",
}

var categoryNotes = map[Category]string{
	PAYE:                          "Progressive income tax withheld from salary, after age rebates and medical scheme credits.",
	UIF:                           "Employee contribution to the Unemployment Insurance Fund, capped per month.",
	VAT:                           "Value-added tax on standard-rated spending.",
	FuelLevies:                    "General fuel levy, Road Accident Fund levy and carbon tax on every litre of fuel.",
	ElectricityLevy:               "Environmental levy charged per kWh of electricity.",
	HealthPromotionLevy:           "Levy on sugar above the threshold in sweetened beverages.",
	PlasticBagLevy:                "Environmental levy on each plastic shopping bag.",
	BeerExcise:                    "Excise per litre of absolute alcohol in beer.",
	WineExcise:                    "Excise per litre of wine, regardless of alcohol content.",
	SpiritsExcise:                 "Excise per litre of absolute alcohol in spirits.",
	CigaretteExcise:               "The higher of the specific excise per pack or the ad valorem share of the retail price.",
	CigarExcise:                   "Excise per gram of cigars.",
	PipeTobaccoExcise:             "Excise per gram of pipe tobacco.",
	VehicleLicenseFees:            "Annual provincial vehicle licence fees.",
	TollFees:                      "Road tolls collected by the state roads agency.",
	MunicipalRates:                "Property rates and services billed by the municipality.",
	TransferDuty:                  "One-time duty on a property purchase, banded by price.",
	VehicleImportDuty:             "Customs duty embedded in the installments of an imported vehicle.",
	DividendsTax:                  "Withholding tax on local dividends.",
	CapitalGainsTax:               "Tax on the taxable portion of realised capital gains.",
	EmbeddedCorporateIncomeTax:    "Estimated corporate income tax passed on through consumer prices.",
	EmbeddedEmployerContributions: "Estimated employer SDL and UIF contributions passed on through prices.",
	EmbeddedTaxAdministration:     "Estimated business cost of tax compliance built into prices.",
	EmbeddedRegulatoryCompliance:  "Estimated regulatory compliance costs built into prices.",
	EmbeddedSupplyChainCascade:    "Estimated taxes paid by upstream suppliers and carried into final prices.",
	TyreLevy:                      "Waste tyre levy per kilogram of tyre.",
	TVLicense:                     "Annual television licence fee.",
	ImportDutiesConsumerGoods:     "Customs duty on imported consumer goods.",
	ImportVATOnline:               "Import VAT on overseas online purchases, charged on goods plus duty.",
	ImportDutiesOnline:            "Customs duty on overseas online purchases.",
	AirportTaxesDomestic:          "Airport tax and passenger service charge on domestic departures.",
	AirportTaxesInternational:     "Airport tax, passenger service charge and tourism levy on international departures.",
	AccommodationTourismLevy:      "Tourism levy on accommodation spend.",
	MunicipalWater:                "Municipal water charges.",
	MunicipalSewerage:             "Municipal sewerage and sanitation charges.",
	MunicipalRefuse:               "Municipal refuse removal charges.",
	MunicipalOther:                "Stormwater, meter rental and other municipal charges.",
}

var categoriesByLabel = func() map[string]Category {
	m := make(map[string]Category, numCategories)
	for c := Category(0); c < numCategories; c++ {
		m[categoryLabels[c]] = c
	}
	return m
}()

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) Label() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

func (c Category) String() string {
	return c.Label()
}

// Note is a one-line explanation of where the money goes.
func (c Category) Note() string {
	return categoryNotes[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || c >= numCategories {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryLabels[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseCategory(label string) (Category, error) {
	c, ok := categoriesByLabel[label]
	if !ok {
		return 0, fmt.Errorf("unknown category %q", label)
	}
	return c, nil
}

// Breakdown maps each category to its annual amount. Categories with no
// triggering input are absent, not zero.
type Breakdown map[Category]float64

// Total sums the breakdown in category order so the result is reproducible.
func (b Breakdown) Total() float64 {
	var total float64

	for _, c := range b.sorted() {
		total += b[c]
	}

	return total
}

// Labels converts the breakdown to display labels.
func (b Breakdown) Labels() map[string]float64 {
	out := make(map[string]float64, len(b))
	for c, v := range b {
		out[c.Label()] = v
	}
	return out
}

func (b Breakdown) sorted() []Category {
	cats := make([]Category, 0, len(b))
	for c := range b {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
