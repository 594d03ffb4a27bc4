package tax

import "math"

const monthsPerYear = 12

// IncomeTaxes computes PAYE and the employee UIF contribution. A household
// with no gross income gets neither line.
func IncomeTaxes(r *RateTable, p Personal) Breakdown {
	result := make(Breakdown)

	gross := p.GrossIncome()
	if gross <= 0 {
		return result
	}

	afterRebates := math.Max(0, r.incomeTaxOn(gross)-r.rebate(p.Age))

	// UIF is capped per month, not per year
	monthlyUIF := math.Min(gross/monthsPerYear*r.UIFEmployeeRate, r.UIFMonthlyCap)

	result[PAYE] = math.Max(0, afterRebates-r.medicalCredit(p.MedicalMembers))
	result[UIF] = math.Max(0, monthlyUIF*monthsPerYear)

	return result
}

func (r *RateTable) rebate(age int) float64 {
	rebate := r.PrimaryRebate

	if age >= 65 {
		rebate += r.SecondaryRebate
	}

	if age >= 75 {
		rebate += r.TertiaryRebate
	}

	return rebate
}

// medicalCredit is the annual medical scheme fees tax credit.
func (r *RateTable) medicalCredit(members int) float64 {
	if members <= 0 {
		return 0
	}

	firstTwo := float64(min(members, 2)) * r.MedCreditFirstTwo
	additional := float64(max(0, members-2)) * r.MedCreditAdditional

	return (firstTwo + additional) * monthsPerYear
}
