package tax

// Profiles hold what a household declares. A zero value means the household
// has none of that income, spend or asset. Validation tags are enforced at the
// boundary; the calculators assume valid input.

type Personal struct {
	AnnualSalary      float64 `json:"annual_salary" yaml:"annual_salary" validate:"gte=0"`
	AnnualBonus       float64 `json:"annual_bonus" yaml:"annual_bonus" validate:"gte=0"`
	RetirementContrib float64 `json:"retirement_contrib" yaml:"retirement_contrib" validate:"gte=0"`
	Age               int     `json:"age" yaml:"age" validate:"gte=0,lte=120"`
	MedicalMembers    int     `json:"medical_members" yaml:"medical_members" validate:"gte=0"`
}

func DefaultPersonal() Personal {
	return Personal{Age: 35}
}

// GrossIncome is salary plus bonus.
func (p Personal) GrossIncome() float64 {
	return p.AnnualSalary + p.AnnualBonus
}

// Consumption is monthly unless the field name says otherwise.
type Consumption struct {
	StdVATSpendMonth  float64 `json:"std_vat_spend_month" yaml:"std_vat_spend_month" validate:"gte=0"`
	ZeroVATSpendMonth float64 `json:"zero_vat_spend_month" yaml:"zero_vat_spend_month" validate:"gte=0"`

	LitresPetrolMonth   float64 `json:"litres_petrol_month" yaml:"litres_petrol_month" validate:"gte=0"`
	LitresDieselMonth   float64 `json:"litres_diesel_month" yaml:"litres_diesel_month" validate:"gte=0"`
	ElectricityKWhMonth float64 `json:"electricity_kwh_month" yaml:"electricity_kwh_month" validate:"gte=0"`

	SugaryDrinkLitresMonth float64 `json:"sugary_drink_litres_month" yaml:"sugary_drink_litres_month" validate:"gte=0"`
	SugaryAvgGPer100ml     float64 `json:"sugary_avg_g_per_100ml" yaml:"sugary_avg_g_per_100ml" validate:"gte=0"`

	BeerLitresMonth    float64 `json:"beer_litres_month" yaml:"beer_litres_month" validate:"gte=0"`
	BeerAvgABV         float64 `json:"beer_avg_abv" yaml:"beer_avg_abv" validate:"gte=0,lte=100"`
	WineLitresMonth    float64 `json:"wine_litres_month" yaml:"wine_litres_month" validate:"gte=0"`
	WineAvgABV         float64 `json:"wine_avg_abv" yaml:"wine_avg_abv" validate:"gte=0,lte=100"`
	SpiritsLitresMonth float64 `json:"spirits_litres_month" yaml:"spirits_litres_month" validate:"gte=0"`
	SpiritsAvgABV      float64 `json:"spirits_avg_abv" yaml:"spirits_avg_abv" validate:"gte=0,lte=100"`

	CigarettePacks20Month    int     `json:"cigarette_packs_20_month" yaml:"cigarette_packs_20_month" validate:"gte=0"`
	CigaretteAvgPricePerPack float64 `json:"cigarette_avg_price_per_pack" yaml:"cigarette_avg_price_per_pack" validate:"gte=0"`
	CigarsGramsMonth         float64 `json:"cigars_grams_month" yaml:"cigars_grams_month" validate:"gte=0"`
	PipeTobaccoGramsMonth    float64 `json:"pipe_tobacco_grams_month" yaml:"pipe_tobacco_grams_month" validate:"gte=0"`

	PlasticBagsPerMonth   int     `json:"plastic_bags_per_month" yaml:"plastic_bags_per_month" validate:"gte=0"`
	TyresPurchasedPerYear int     `json:"tyres_purchased_per_year" yaml:"tyres_purchased_per_year" validate:"gte=0"`
	TyreAvgWeightKg       float64 `json:"tyre_avg_weight_kg" yaml:"tyre_avg_weight_kg" validate:"gte=0"`
	TVLicensesCount       int     `json:"tv_licenses_count" yaml:"tv_licenses_count" validate:"gte=0"`

	MonthlyImportedGoodsSpend       float64 `json:"monthly_imported_goods_spend" yaml:"monthly_imported_goods_spend" validate:"gte=0"`
	ImportedGoodsAvgDutyRate        float64 `json:"imported_goods_avg_duty_rate" yaml:"imported_goods_avg_duty_rate" validate:"gte=0,lte=1"`
	MonthlyInternationalOnlineSpend float64 `json:"monthly_international_online_spend" yaml:"monthly_international_online_spend" validate:"gte=0"`
}

func DefaultConsumption() Consumption {
	return Consumption{
		SugaryAvgGPer100ml:       10,
		BeerAvgABV:               5,
		WineAvgABV:               12.5,
		SpiritsAvgABV:            43,
		CigaretteAvgPricePerPack: 45,
		TyreAvgWeightKg:          10,
		ImportedGoodsAvgDutyRate: 0.20,
	}
}

type TransportProperty struct {
	VehicleLicenceFeesAnnual     float64 `json:"vehicle_licence_fees_annual" yaml:"vehicle_licence_fees_annual" validate:"gte=0"`
	TollsAnnual                  float64 `json:"tolls_annual" yaml:"tolls_annual" validate:"gte=0"`
	MunicipalRatesServicesAnnual float64 `json:"municipal_rates_services_annual" yaml:"municipal_rates_services_annual" validate:"gte=0"`

	// BuyingPropertyPrice is set only when a purchase is planned this year.
	BuyingPropertyPrice *float64 `json:"buying_property_price" yaml:"buying_property_price" validate:"omitempty,gte=0"`

	VehicleMonthlyInstallment float64 `json:"vehicle_monthly_installment" yaml:"vehicle_monthly_installment" validate:"gte=0"`
	VehicleIsImported         bool    `json:"vehicle_is_imported" yaml:"vehicle_is_imported"`

	MunicipalWaterMonthly    float64 `json:"municipal_water_monthly" yaml:"municipal_water_monthly" validate:"gte=0"`
	MunicipalSewerageMonthly float64 `json:"municipal_sewerage_monthly" yaml:"municipal_sewerage_monthly" validate:"gte=0"`
	MunicipalRefuseMonthly   float64 `json:"municipal_refuse_monthly" yaml:"municipal_refuse_monthly" validate:"gte=0"`
	MunicipalOtherMonthly    float64 `json:"municipal_other_monthly" yaml:"municipal_other_monthly" validate:"gte=0"`
}

type Investment struct {
	SADividendsAnnual float64 `json:"sa_dividends_annual" yaml:"sa_dividends_annual" validate:"gte=0"`
	// TaxableCGTBaseAnnual is the gain after exclusions and inclusion rate.
	TaxableCGTBaseAnnual float64 `json:"taxable_cgt_base_annual" yaml:"taxable_cgt_base_annual" validate:"gte=0"`
}

type Travel struct {
	DomesticFlightsPerYear      int     `json:"domestic_flights_per_year" yaml:"domestic_flights_per_year" validate:"gte=0"`
	InternationalFlightsPerYear int     `json:"international_flights_per_year" yaml:"international_flights_per_year" validate:"gte=0"`
	AnnualAccommodationSpend    float64 `json:"annual_accommodation_spend" yaml:"annual_accommodation_spend" validate:"gte=0"`
}

// Household is everything one calculation needs besides the rates.
type Household struct {
	Personal          Personal          `json:"personal" yaml:"personal"`
	Consumption       Consumption       `json:"consumption" yaml:"consumption"`
	TransportProperty TransportProperty `json:"transport_property" yaml:"transport_property"`
	Investment        Investment        `json:"investment" yaml:"investment"`
	Travel            Travel            `json:"travel" yaml:"travel"`
}

// DefaultHousehold returns a household with every profile at its defaults.
// Decoding JSON or YAML over it keeps the defaults for omitted fields.
func DefaultHousehold() Household {
	return Household{
		Personal:    DefaultPersonal(),
		Consumption: DefaultConsumption(),
	}
}
