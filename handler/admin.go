package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"

	"github.com/AnnaCarter465/tax-footprint/database"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

type AdminRatesRequest struct {
	RatesYAML string `json:"rates_yaml"`
}

type AdminRatesResponse struct {
	Message string `json:"message"`
	TaxYear string `json:"tax_year"`
}

type RateEditor interface {
	Raw() ([]byte, error)
	Replace(content []byte) (*tax.RateTable, error)
}

type StatsDB interface {
	SubmissionStats(ctx context.Context) (database.SubmissionStats, error)
}

type AdminHandler struct {
	rates   RateEditor
	stats   StatsDB
	enabled bool
}

// NewAdminHandler builds the admin handlers. stats is nil when submission
// logging is off.
func NewAdminHandler(rates RateEditor, stats StatsDB, enabled bool) *AdminHandler {
	return &AdminHandler{rates, stats, enabled}
}

func (a *AdminHandler) disabled(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ResponseMsg{
		Message: "Admin interface is disabled",
	})
}

func (a *AdminHandler) GetRates(c echo.Context) error {
	if !a.enabled {
		return a.disabled(c)
	}

	raw, err := a.rates.Raw()
	if err != nil {
		log.Println("Failed to read tax rates:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to read tax rates",
		})
	}

	return c.Blob(http.StatusOK, "application/x-yaml", raw)
}

func (a *AdminHandler) UpdateRates(c echo.Context) error {
	if !a.enabled {
		return a.disabled(c)
	}

	content, err := ratesBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if strings.TrimSpace(content) == "" {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "No rates content provided",
		})
	}

	var doc interface{}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid YAML syntax: " + err.Error(),
		})
	}

	rates, err := a.rates.Replace([]byte(content))

	var cfgErr *tax.ConfigurationError
	if errors.As(err, &cfgErr) {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Validation failed: " + cfgErr.Error(),
		})
	}
	if err != nil {
		log.Println("Failed to replace tax rates:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to update tax rates",
		})
	}

	return c.JSON(http.StatusOK, &AdminRatesResponse{
		Message: "Tax rates updated",
		TaxYear: rates.TaxYear,
	})
}

// ratesBody accepts either a raw YAML body or a JSON {"rates_yaml": ...}.
func ratesBody(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return string(body), nil
	}

	var req AdminRatesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", err
	}

	return req.RatesYAML, nil
}

func (a *AdminHandler) GetStats(c echo.Context) error {
	if !a.enabled {
		return a.disabled(c)
	}

	if a.stats == nil {
		return c.JSON(http.StatusNotFound, ResponseMsg{
			Message: "Submission logging is disabled",
		})
	}

	stats, err := a.stats.SubmissionStats(c.Request().Context())
	if err != nil {
		log.Println("Failed to load submission stats:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to load submission stats",
		})
	}

	return c.JSON(http.StatusOK, stats)
}
