package tax

// OtherLevies covers the tyre levy, TV licences, import duties and VAT on
// imported goods, airport taxes and the accommodation tourism levy.
func OtherLevies(r *RateTable, c Consumption, t Travel) Breakdown {
	result := make(Breakdown)

	if c.TyresPurchasedPerYear > 0 {
		result[TyreLevy] = float64(c.TyresPurchasedPerYear) * c.TyreAvgWeightKg * r.TyreLevyPerKg
	}

	if c.TVLicensesCount > 0 {
		result[TVLicense] = float64(c.TVLicensesCount) * r.TVLicenseAnnual
	}

	if c.MonthlyImportedGoodsSpend > 0 {
		result[ImportDutiesConsumerGoods] = c.MonthlyImportedGoodsSpend * monthsPerYear * c.ImportedGoodsAvgDutyRate
	}

	if c.MonthlyInternationalOnlineSpend > 0 {
		annual := c.MonthlyInternationalOnlineSpend * monthsPerYear
		duty := annual * r.ImportDutyWeightedAvg

		// VAT is levied on the goods plus the duty
		result[ImportVATOnline] = (annual + duty) * r.ImportVATRate
		if duty > 0 {
			result[ImportDutiesOnline] = duty
		}
	}

	if t.DomesticFlightsPerYear > 0 {
		perFlight := r.AirportTaxDomestic + r.PassengerServiceDomestic
		result[AirportTaxesDomestic] = float64(t.DomesticFlightsPerYear) * perFlight
	}

	if t.InternationalFlightsPerYear > 0 {
		perFlight := r.AirportTaxInternational + r.PassengerServiceIntl + r.TourismLevyInternational
		result[AirportTaxesInternational] = float64(t.InternationalFlightsPerYear) * perFlight
	}

	if t.AnnualAccommodationSpend > 0 {
		result[AccommodationTourismLevy] = t.AnnualAccommodationSpend * r.AccommodationTourismLevyRate
	}

	return result
}

// MunicipalServices annualises the monthly water, sewerage, refuse and other
// municipal charges.
func MunicipalServices(p TransportProperty) Breakdown {
	result := make(Breakdown)

	charges := []struct {
		category Category
		monthly  float64
	}{
		{MunicipalWater, p.MunicipalWaterMonthly},
		{MunicipalSewerage, p.MunicipalSewerageMonthly},
		{MunicipalRefuse, p.MunicipalRefuseMonthly},
		{MunicipalOther, p.MunicipalOtherMonthly},
	}

	for _, charge := range charges {
		if charge.monthly > 0 {
			result[charge.category] = charge.monthly * monthsPerYear
		}
	}

	return result
}
