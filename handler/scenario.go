package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AnnaCarter465/tax-footprint/database"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

type ScenarioRequest struct {
	Label        *string         `json:"label" validate:"omitempty,max=200"`
	CalcRequest  json.RawMessage `json:"calc_request" validate:"required"`
	CalcResponse json.RawMessage `json:"calc_response" validate:"required"`
}

type ScenarioResponse struct {
	ID        string          `json:"id"`
	Label     *string         `json:"label"`
	CreatedAt time.Time       `json:"created_at"`
	Inputs    json.RawMessage `json:"inputs"`
	Outputs   json.RawMessage `json:"outputs"`
}

type ScenarioDB interface {
	CreateScenario(ctx context.Context, label *string, inputs, outputs string) (database.Scenario, error)
	FindScenarioByID(ctx context.Context, id string) (database.Scenario, error)
}

type ScenarioHandler struct {
	vl *validator.Validate
	db ScenarioDB
}

func NewScenarioHandler(vl *validator.Validate, db ScenarioDB) *ScenarioHandler {
	return &ScenarioHandler{vl, db}
}

func (s *ScenarioHandler) SaveScenario(c echo.Context) error {
	var req ScenarioRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if err := s.vl.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Bad request",
		})
	}

	if !isObject(req.CalcRequest) || !isObject(req.CalcResponse) {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "calc_request and calc_response must be JSON objects",
		})
	}

	h := tax.DefaultHousehold()

	if err := json.Unmarshal(req.CalcRequest, &h); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid calc_request",
		})
	}

	if err := tax.Validate(s.vl, h); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: err.Error(),
		})
	}

	scenario, err := s.db.CreateScenario(c.Request().Context(), req.Label, string(req.CalcRequest), string(req.CalcResponse))
	if err != nil {
		log.Println("Failed to save scenario:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to save scenario",
		})
	}

	return c.JSON(http.StatusCreated, toScenarioResponse(scenario))
}

func (s *ScenarioHandler) GetScenario(c echo.Context) error {
	parsed, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseMsg{
			Message: "Invalid scenario id",
		})
	}

	// ids are stored in canonical lower-case form
	scenario, err := s.db.FindScenarioByID(c.Request().Context(), parsed.String())
	if errors.Is(err, database.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ResponseMsg{
			Message: "Scenario not found",
		})
	}
	if err != nil {
		log.Println("Failed to find scenario:", err)
		return c.JSON(http.StatusInternalServerError, ResponseMsg{
			Message: "Failed to find scenario",
		})
	}

	return c.JSON(http.StatusOK, toScenarioResponse(scenario))
}

func toScenarioResponse(s database.Scenario) *ScenarioResponse {
	return &ScenarioResponse{
		ID:        s.ID,
		Label:     s.Label,
		CreatedAt: s.CreatedAt,
		Inputs:    json.RawMessage(s.Inputs),
		Outputs:   json.RawMessage(s.Outputs),
	}
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
