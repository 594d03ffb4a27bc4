package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const Version = "1.0.0"

const pingTimeout = 2 * time.Second

type ResponseMsg struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db}
}

// Healthcheck reports 503 with status "degraded" when the database does not
// answer a ping.
func (h *HealthHandler) Healthcheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Println("Database ping failed:", err)
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:   "degraded",
			Version:  Version,
			Database: "unreachable",
		})
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Version:  Version,
		Database: "ok",
	})
}
