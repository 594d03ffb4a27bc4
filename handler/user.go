package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"

	"github.com/AnnaCarter465/tax-footprint/analytics"
	"github.com/AnnaCarter465/tax-footprint/report"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

type CalcResponse struct {
	Breakdown            map[string]float64 `json:"breakdown"`
	Items                []tax.SummaryRow   `json:"items"`
	Total                float64            `json:"total"`
	EffectiveRateVsGross float64            `json:"effective_rate_vs_gross"`
	MonthlyTotal         float64            `json:"monthly_total"`
	TaxYear              string             `json:"tax_year,omitempty"`
}

type RatesResponse struct {
	Rates   map[string]interface{} `json:"rates"`
	Version string                 `json:"version"`
}

type TaxCSV struct {
	AnnualSalary  float64 `json:"annualSalary"`
	Total         float64 `json:"total"`
	EffectiveRate float64 `json:"effectiveRate"`
}

type TaxCSVResponse struct {
	Taxes []TaxCSV `json:"taxes"`
}

var csvHeader = []string{"annual_salary", "annual_bonus", "age", "medical_members", "std_vat_spend_month"}

type RateSource interface {
	Current() (*tax.RateTable, error)
	Raw() ([]byte, error)
}

type SubmissionLogger interface {
	Log(req analytics.Request, out analytics.Outcome)
}

type TaxHandler struct {
	vl     *validator.Validate
	rates  RateSource
	logger SubmissionLogger
}

// NewTaxHandler builds the public calculation handlers. logger may be nil.
func NewTaxHandler(vl *validator.Validate, rates RateSource, logger SubmissionLogger) *TaxHandler {
	return &TaxHandler{vl, rates, logger}
}

func (t *TaxHandler) currentRates() (*tax.RateTable, error) {
	rates, err := t.rates.Current()
	if err != nil {
		log.Println("Failed to load tax rates:", err)
		return nil, err
	}

	return rates, nil
}

// bindHousehold decodes the request body over the default household and
// validates it. It writes the error response itself and reports whether the
// caller may continue.
func (t *TaxHandler) bindHousehold(c echo.Context) (tax.Household, bool, error) {
	h := tax.DefaultHousehold()

	if err := c.Bind(&h); err != nil {
		return h, false, c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if err := tax.Validate(t.vl, h); err != nil {
		return h, false, c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: err.Error(),
		})
	}

	return h, true, nil
}

func rateErrorResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ResponseMsg{
		Message: "Tax rates are misconfigured",
	})
}

func (t *TaxHandler) CalculateTax(c echo.Context) error {
	h, ok, err := t.bindHousehold(c)
	if !ok {
		return err
	}

	rates, err := t.currentRates()
	if err != nil {
		return rateErrorResponse(c)
	}

	result := tax.Calculate(rates, h)

	resp := &CalcResponse{
		Breakdown:            result.Breakdown.Labels(),
		Items:                tax.Summary(result.Breakdown, result.Total),
		Total:                result.Total,
		EffectiveRateVsGross: result.EffectiveRate,
		MonthlyTotal:         result.MonthlyTotal,
		TaxYear:              rates.TaxYear,
	}

	if t.logger != nil {
		t.logger.Log(requestMeta(c), analytics.Outcome{
			GrossIncome:   result.GrossIncome,
			Total:         result.Total,
			EffectiveRate: result.EffectiveRate,
			Inputs:        h,
			Results:       resp,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func requestMeta(c echo.Context) analytics.Request {
	r := c.Request()

	return analytics.Request{
		IP:             c.RealIP(),
		UserAgent:      r.UserAgent(),
		Referrer:       r.Referer(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		SessionID:      r.Header.Get("X-Session-ID"),
	}
}

func (t *TaxHandler) CalculateTaxWithCSV(c echo.Context) error {
	if !strings.HasPrefix(c.Request().Header.Get("Content-Type"), "text/csv") {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Unacceptable content, require CSV content",
		})
	}

	rows, err := csv.NewReader(c.Request().Body).ReadAll()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request, might not be csv format",
		})
	}

	if len(rows) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Wrong csv content, no content",
		})
	}

	if len(rows) == 1 {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Wrong csv content, should have more than 1 row due to it is header",
		})
	}

	var households []tax.Household

	for i, row := range rows {
		if len(row) != len(csvHeader) {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: "Wrong csv column length",
			})
		}

		if i == 0 {
			for col, name := range csvHeader {
				if strings.TrimSpace(row[col]) != name {
					return c.JSON(http.StatusBadRequest, ResponseMsg{
						Message: "Wrong csv header",
					})
				}
			}

			continue
		}

		h, err := householdFromCSV(row)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: fmt.Sprintf("Row %d: %v", i, err),
			})
		}

		if err := tax.Validate(t.vl, h); err != nil {
			return c.JSON(http.StatusBadRequest, ResponseMsg{
				Message: fmt.Sprintf("Row %d: %v", i, err),
			})
		}

		households = append(households, h)
	}

	rates, err := t.currentRates()
	if err != nil {
		return rateErrorResponse(c)
	}

	var taxes []TaxCSV

	for _, h := range households {
		result := tax.Calculate(rates, h)

		taxes = append(taxes, TaxCSV{
			AnnualSalary:  h.Personal.AnnualSalary,
			Total:         result.Total,
			EffectiveRate: result.EffectiveRate,
		})
	}

	return c.JSON(http.StatusOK, &TaxCSVResponse{
		Taxes: taxes,
	})
}

func householdFromCSV(row []string) (tax.Household, error) {
	h := tax.DefaultHousehold()

	floats := []struct {
		name string
		dst  *float64
		raw  string
	}{
		{"annual_salary", &h.Personal.AnnualSalary, row[0]},
		{"annual_bonus", &h.Personal.AnnualBonus, row[1]},
		{"std_vat_spend_month", &h.Consumption.StdVATSpendMonth, row[4]},
	}

	for _, f := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil {
			return h, fmt.Errorf("invalid %s amount", f.name)
		}
		*f.dst = v
	}

	ints := []struct {
		name string
		dst  *int
		raw  string
	}{
		{"age", &h.Personal.Age, row[2]},
		{"medical_members", &h.Personal.MedicalMembers, row[3]},
	}

	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return h, fmt.Errorf("invalid %s", f.name)
		}
		*f.dst = v
	}

	return h, nil
}

// ExportTax returns the summary list as a CSV or PDF download.
func (t *TaxHandler) ExportTax(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	if format != "csv" && format != "pdf" {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Unsupported export format, use csv or pdf",
		})
	}

	h, ok, err := t.bindHousehold(c)
	if !ok {
		return err
	}

	rates, err := t.currentRates()
	if err != nil {
		return rateErrorResponse(c)
	}

	result := tax.Calculate(rates, h)

	var buf bytes.Buffer

	contentType := "text/csv"

	switch format {
	case "csv":
		err = report.WriteCSV(&buf, tax.Summary(result.Breakdown, result.Total))
	case "pdf":
		contentType = "application/pdf"
		err = report.WritePDF(&buf, report.Document{
			TaxYear:     rates.TaxYear,
			GeneratedAt: time.Now(),
			Result:      result,
		})
	}

	if err != nil {
		log.Println("Failed to export tax breakdown:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Internal server error",
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "tax-footprint."+format))

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (t *TaxHandler) GetRates(c echo.Context) error {
	raw, err := t.rates.Raw()
	if err != nil {
		log.Println("Failed to read tax rates:", err)
		return rateErrorResponse(c)
	}

	var rates map[string]interface{}

	if err := yaml.Unmarshal(raw, &rates); err != nil {
		log.Println("Failed to parse tax rates:", err)
		return rateErrorResponse(c)
	}

	version, _ := rates["tax_year"].(string)

	return c.JSON(http.StatusOK, &RatesResponse{
		Rates:   rates,
		Version: version,
	})
}

