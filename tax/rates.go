package tax

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

type PAYEBracket struct {
	Lower   float64  `yaml:"lower" json:"lower"`
	UpTo    *float64 `yaml:"up_to" json:"up_to"` // nil is the open-ended top bracket
	Rate    float64  `yaml:"rate" json:"rate"`
	BaseTax float64  `yaml:"base_tax" json:"base_tax"`
}

type TransferDutyBand struct {
	UpTo       *float64 `yaml:"up_to" json:"up_to"`
	Base       float64  `yaml:"base" json:"base"`
	Rate       float64  `yaml:"rate" json:"rate"`
	ExcessOver float64  `yaml:"excess_over" json:"excess_over"`
}

// RateTable is one tax year's statutory parameters. It is never mutated after
// loading and may be shared between concurrent calculations.
type RateTable struct {
	TaxYear string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`

	PAYEBrackets    []PAYEBracket `yaml:"paye_brackets" json:"paye_brackets"`
	PrimaryRebate   float64       `yaml:"primary_rebate" json:"primary_rebate"`
	SecondaryRebate float64       `yaml:"secondary_rebate" json:"secondary_rebate"`
	TertiaryRebate  float64       `yaml:"tertiary_rebate" json:"tertiary_rebate"`

	MedCreditFirstTwo   float64 `yaml:"med_credit_first_two" json:"med_credit_first_two"`
	MedCreditAdditional float64 `yaml:"med_credit_additional" json:"med_credit_additional"`

	UIFEmployeeRate float64 `yaml:"uif_employee_rate" json:"uif_employee_rate"`
	UIFMonthlyCap   float64 `yaml:"uif_monthly_cap" json:"uif_monthly_cap"`

	VATRate float64 `yaml:"vat_rate" json:"vat_rate"`

	FuelGFLPetrol    float64 `yaml:"fuel_gfl_petrol" json:"fuel_gfl_petrol"`
	FuelGFLDiesel    float64 `yaml:"fuel_gfl_diesel" json:"fuel_gfl_diesel"`
	FuelRAF          float64 `yaml:"fuel_raf" json:"fuel_raf"`
	FuelCarbonPetrol float64 `yaml:"fuel_carbon_petrol" json:"fuel_carbon_petrol"`
	FuelCarbonDiesel float64 `yaml:"fuel_carbon_diesel" json:"fuel_carbon_diesel"`

	ElectricityEnvLevy float64 `yaml:"electricity_env_levy" json:"electricity_env_levy"`

	HPLPerGramOverThreshold float64 `yaml:"hpl_per_gram_over_threshold" json:"hpl_per_gram_over_threshold"`
	HPLThresholdGPer100ml   float64 `yaml:"hpl_threshold_g_per_100ml" json:"hpl_threshold_g_per_100ml"`

	BeerExcisePerLAA             float64 `yaml:"beer_excise_per_laa" json:"beer_excise_per_laa"`
	BeerTypicalABV               float64 `yaml:"beer_typical_abv" json:"beer_typical_abv"`
	WineExcisePerLitre           float64 `yaml:"wine_excise_per_litre" json:"wine_excise_per_litre"`
	FortifiedWineExcisePerLitre  float64 `yaml:"fortified_wine_excise_per_litre" json:"fortified_wine_excise_per_litre"`
	SpiritsExcisePerLAA          float64 `yaml:"spirits_excise_per_laa" json:"spirits_excise_per_laa"`
	SpiritsTypicalABV            float64 `yaml:"spirits_typical_abv" json:"spirits_typical_abv"`
	LAAToMLRatio                 float64 `yaml:"laa_to_ml_ratio" json:"laa_to_ml_ratio"`
	CigaretteExcisePer20         float64 `yaml:"cigarette_excise_per_20" json:"cigarette_excise_per_20"`
	CigaretteAdValoremRate       float64 `yaml:"cigarette_ad_valorem_rate" json:"cigarette_ad_valorem_rate"`
	CigarExcisePerGram           float64 `yaml:"cigar_excise_per_gram" json:"cigar_excise_per_gram"`
	PipeTobaccoExcisePerGram     float64 `yaml:"pipe_tobacco_excise_per_gram" json:"pipe_tobacco_excise_per_gram"`
	PlasticBagLevy               float64 `yaml:"plastic_bag_levy" json:"plastic_bag_levy"`
	TyreLevyPerKg                float64 `yaml:"tyre_levy_per_kg" json:"tyre_levy_per_kg"`
	TVLicenseAnnual              float64 `yaml:"tv_license_annual" json:"tv_license_annual"`
	ImportDutyClothing           float64 `yaml:"import_duty_clothing" json:"import_duty_clothing"`
	ImportDutyFootwear           float64 `yaml:"import_duty_footwear" json:"import_duty_footwear"`
	ImportDutyElectronicsLow     float64 `yaml:"import_duty_electronics_low" json:"import_duty_electronics_low"`
	ImportDutyElectronicsHigh    float64 `yaml:"import_duty_electronics_high" json:"import_duty_electronics_high"`
	ImportDutyGeneral            float64 `yaml:"import_duty_general" json:"import_duty_general"`
	ImportDutyWeightedAvg        float64 `yaml:"import_duty_weighted_avg" json:"import_duty_weighted_avg"`
	AirportTaxDomestic           float64 `yaml:"airport_tax_domestic" json:"airport_tax_domestic"`
	PassengerServiceDomestic     float64 `yaml:"passenger_service_charge_domestic" json:"passenger_service_charge_domestic"`
	AirportTaxInternational      float64 `yaml:"airport_tax_international" json:"airport_tax_international"`
	PassengerServiceIntl         float64 `yaml:"passenger_service_charge_international" json:"passenger_service_charge_international"`
	TourismLevyInternational     float64 `yaml:"tourism_levy_international" json:"tourism_levy_international"`
	AccommodationTourismLevyRate float64 `yaml:"accommodation_tourism_levy_rate" json:"accommodation_tourism_levy_rate"`
	ImportVATRate                float64 `yaml:"import_vat_rate" json:"import_vat_rate"`
	ImportVATThreshold           float64 `yaml:"import_vat_threshold" json:"import_vat_threshold"`

	MunicipalWaterTypicalPerKL    float64 `yaml:"municipal_water_typical_per_kl" json:"municipal_water_typical_per_kl"`
	MunicipalSewerageShareOfWater float64 `yaml:"municipal_sewerage_as_percent_of_water" json:"municipal_sewerage_as_percent_of_water"`
	MunicipalRefuseTypicalMonthly float64 `yaml:"municipal_refuse_typical_monthly" json:"municipal_refuse_typical_monthly"`
	DividendsTaxRate              float64 `yaml:"dividends_tax_rate" json:"dividends_tax_rate"`
	CGTEffectiveMaxRate           float64 `yaml:"cgt_effective_max_rate" json:"cgt_effective_max_rate"`

	TransferDuty []TransferDutyBand `yaml:"transfer_duty" json:"transfer_duty"`
}

// ConfigurationError reports a rate source that is missing a required field
// or holds a value of the wrong type.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "rate configuration: " + e.Reason
	}
	return fmt.Sprintf("rate configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LoadRates reads and parses the rate source at path.
func LoadRates(path string) (*RateTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("read %s: %v", path, err), Err: err}
	}

	return ParseRates(content)
}

// ParseRates checks that every required field is present with a numeric
// value, then decodes the document. Bracket and band order is kept as given.
func ParseRates(content []byte) (*RateTable, error) {
	var raw map[string]interface{}

	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("invalid YAML: %v", err), Err: err}
	}

	if raw == nil {
		return nil, &ConfigurationError{Reason: "empty rate source"}
	}

	if err := checkRequired(raw, reflect.TypeOf(RateTable{}), ""); err != nil {
		return nil, err
	}

	var rt RateTable

	if err := yaml.Unmarshal(content, &rt); err != nil {
		return nil, &ConfigurationError{Reason: err.Error(), Err: err}
	}

	return &rt, nil
}

func yamlName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("yaml")
	if tag == "" || tag == "-" {
		return "", false
	}

	name, opts, _ := strings.Cut(tag, ",")

	return name, !strings.Contains(opts, "omitempty")
}

func checkRequired(raw map[string]interface{}, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		name, required := yamlName(f)
		if name == "" {
			continue
		}

		field := prefix + name
		value, ok := raw[name]

		if !ok {
			if !required {
				continue
			}

			return &ConfigurationError{Field: field, Reason: "missing required field" + suggest(raw, t, name)}
		}

		switch f.Type.Kind() {
		case reflect.Float64:
			if !isNumber(value) {
				return &ConfigurationError{Field: field, Reason: fmt.Sprintf("must be a number, got %s", describe(value))}
			}
		case reflect.Ptr:
			// nullable bound: absent is an error (handled above), null means unbounded
			if value != nil && !isNumber(value) {
				return &ConfigurationError{Field: field, Reason: fmt.Sprintf("must be a number or null, got %s", describe(value))}
			}
		case reflect.String:
			if _, ok := value.(string); !ok {
				return &ConfigurationError{Field: field, Reason: fmt.Sprintf("must be a string, got %s", describe(value))}
			}
		case reflect.Slice:
			items, ok := value.([]interface{})
			if !ok || len(items) == 0 {
				return &ConfigurationError{Field: field, Reason: "must be a non-empty list"}
			}

			for idx, item := range items {
				entry, ok := item.(map[string]interface{})
				if !ok {
					return &ConfigurationError{Field: fmt.Sprintf("%s[%d]", field, idx), Reason: "must be a mapping"}
				}

				if err := checkRequired(entry, f.Type.Elem(), fmt.Sprintf("%s[%d].", field, idx)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	}

	return false
}

func describe(v interface{}) string {
	if v == nil {
		return "null"
	}

	return fmt.Sprintf("%T (%v)", v, v)
}

// suggest returns a hint naming the unknown key closest to want, if any is
// close enough to be a likely typo.
func suggest(raw map[string]interface{}, t reflect.Type, want string) string {
	known := make(map[string]bool, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		if name, _ := yamlName(t.Field(i)); name != "" {
			known[name] = true
		}
	}

	var unknown []string

	for key := range raw {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)

	best, bestDist := "", 4

	for _, key := range unknown {
		if d := levenshtein.ComputeDistance(want, key); d < bestDist {
			best, bestDist = key, d
		}
	}

	if best == "" {
		return ""
	}

	return fmt.Sprintf(" (found %q, did you mean %q?)", best, want)
}

// CheckContiguity reports every ordering or contiguity problem in the bracket
// and band lists. Lookups assume ascending, gap-free lists ending in an
// open-ended entry.
func (r *RateTable) CheckContiguity() error {
	var errs []error

	for i, b := range r.PAYEBrackets {
		last := i == len(r.PAYEBrackets)-1

		switch {
		case last && b.UpTo != nil:
			errs = append(errs, fmt.Errorf("paye_brackets[%d]: last bracket must be open-ended", i))
		case !last && b.UpTo == nil:
			errs = append(errs, fmt.Errorf("paye_brackets[%d]: only the last bracket may be open-ended", i))
		case !last && *b.UpTo <= b.Lower:
			errs = append(errs, fmt.Errorf("paye_brackets[%d]: up_to %v must exceed lower %v", i, *b.UpTo, b.Lower))
		case !last && *b.UpTo != r.PAYEBrackets[i+1].Lower:
			errs = append(errs, fmt.Errorf("paye_brackets[%d]: up_to %v does not meet next lower %v", i, *b.UpTo, r.PAYEBrackets[i+1].Lower))
		}
	}

	prev := 0.0

	for i, band := range r.TransferDuty {
		last := i == len(r.TransferDuty)-1

		if band.ExcessOver != prev {
			errs = append(errs, fmt.Errorf("transfer_duty[%d]: excess_over %v does not meet previous up_to %v", i, band.ExcessOver, prev))
		}

		switch {
		case last && band.UpTo != nil:
			errs = append(errs, fmt.Errorf("transfer_duty[%d]: last band must be open-ended", i))
		case !last && band.UpTo == nil:
			errs = append(errs, fmt.Errorf("transfer_duty[%d]: only the last band may be open-ended", i))
		case !last:
			if *band.UpTo <= prev {
				errs = append(errs, fmt.Errorf("transfer_duty[%d]: up_to %v is not ascending", i, *band.UpTo))
			}
			prev = *band.UpTo
		}
	}

	return errors.Join(errs...)
}

func (r *RateTable) incomeTaxOn(income float64) float64 {
	for _, b := range r.PAYEBrackets {
		if b.UpTo == nil || income <= *b.UpTo {
			return b.BaseTax + (income-b.Lower)*b.Rate
		}
	}

	return 0
}

func (r *RateTable) transferDutyOn(price float64) float64 {
	for _, band := range r.TransferDuty {
		if band.UpTo == nil || price <= *band.UpTo {
			return band.Base + (price-band.ExcessOver)*band.Rate
		}
	}

	return 0
}
