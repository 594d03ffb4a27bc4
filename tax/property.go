package tax

// VehicleImportDutyRate is the customs duty on the base price of a vehicle
// that is not assembled locally. It is not part of the rate source.
const VehicleImportDutyRate = 0.25

// PropertyTransportTaxes covers licence fees, tolls, municipal rates,
// transfer duty on a planned purchase and the duty embedded in imported
// vehicle installments.
func PropertyTransportTaxes(r *RateTable, p TransportProperty) Breakdown {
	result := make(Breakdown)

	if p.VehicleLicenceFeesAnnual > 0 {
		result[VehicleLicenseFees] = p.VehicleLicenceFeesAnnual
	}

	if p.TollsAnnual > 0 {
		result[TollFees] = p.TollsAnnual
	}

	if p.MunicipalRatesServicesAnnual > 0 {
		result[MunicipalRates] = p.MunicipalRatesServicesAnnual
	}

	if p.BuyingPropertyPrice != nil {
		if duty := r.transferDutyOn(*p.BuyingPropertyPrice); duty > 0 {
			result[TransferDuty] = duty
		}
	}

	if p.VehicleMonthlyInstallment > 0 && p.VehicleIsImported {
		annual := p.VehicleMonthlyInstallment * monthsPerYear
		result[VehicleImportDuty] = annual * dutyShareOfPrice(VehicleImportDutyRate)
	}

	return result
}

// dutyShareOfPrice converts a duty on the base price into its share of the
// duty-inclusive price: 25% on base is 25/125 = 20% of what the buyer pays.
func dutyShareOfPrice(rate float64) float64 {
	return rate / (1 + rate)
}

// InvestmentTaxes computes dividends tax and capital gains tax. The CGT base
// is the caller's already-computed taxable gain.
func InvestmentTaxes(r *RateTable, inv Investment) Breakdown {
	result := make(Breakdown)

	if inv.SADividendsAnnual > 0 {
		result[DividendsTax] = inv.SADividendsAnnual * r.DividendsTaxRate
	}

	if inv.TaxableCGTBaseAnnual > 0 {
		result[CapitalGainsTax] = inv.TaxableCGTBaseAnnual * r.CGTEffectiveMaxRate
	}

	return result
}
