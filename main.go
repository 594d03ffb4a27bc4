package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AnnaCarter465/tax-footprint/analytics"
	"github.com/AnnaCarter465/tax-footprint/config"
	"github.com/AnnaCarter465/tax-footprint/database"
	"github.com/AnnaCarter465/tax-footprint/handler"
	"github.com/AnnaCarter465/tax-footprint/ratestore"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Cannot load configuration: ", err)
	}

	if len(strings.TrimSpace(cfg.DatabaseURL)) == 0 {
		log.Fatal("Missing an env variable `DATABASE_URL`")
	}

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Cannot connection to database ", err)
	}

	if err := db.Migrate(); err != nil {
		log.Fatal("Cannot migrate database ", err)
	}

	rates, err := ratestore.Open(cfg.TaxRatesPath)
	if err != nil {
		log.Fatal("Cannot load tax rates ", err)
	}

	var (
		logger *analytics.Logger
		stats  handler.StatsDB
	)

	if cfg.EnableSubmissionLogging {
		logger = analytics.NewLogger(db, cfg.GeoLookupURL, true)
		stats = db
	}

	vl := tax.NewValidator()

	e := newServer(cfg, handlers{
		health:   handler.NewHealthHandler(db),
		tax:      handler.NewTaxHandler(vl, rates, logger),
		scenario: handler.NewScenarioHandler(vl, db),
		admin:    handler.NewAdminHandler(rates, stats, cfg.AdminEnabled),
	})

	if !cfg.AdminAuthConfigured() && cfg.AdminEnabled {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, admin routes are unauthenticated")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown

	log.Println("shutting down the server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}

	logger.Wait()

	if err := db.Close(); err != nil {
		log.Println("Failed to close database", err)
	}
}

// bodyLimit caps every request body, including CSV batches and rate uploads.
const bodyLimit = "1M"

type handlers struct {
	health   *handler.HealthHandler
	tax      *handler.TaxHandler
	scenario *handler.ScenarioHandler
	admin    *handler.AdminHandler
}

func newServer(cfg config.Config, h handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.Gzip())

	if cfg.Debug {
		e.Use(middleware.CORS())
	}

	e.GET("/health", h.health.Healthcheck)

	api := e.Group("/api")
	api.POST("/calc", h.tax.CalculateTax)
	api.POST("/calc/csv", h.tax.CalculateTaxWithCSV)
	api.POST("/calc/export", h.tax.ExportTax)
	api.GET("/rates", h.tax.GetRates)
	api.POST("/scenario", h.scenario.SaveScenario)
	api.GET("/scenario/:id", h.scenario.GetScenario)

	admin := e.Group("/admin")

	if cfg.AdminAuthConfigured() {
		admin.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
			return userOK && passOK, nil
		}))
	}

	admin.GET("/rates", h.admin.GetRates)
	admin.PUT("/rates", h.admin.UpdateRates)
	admin.GET("/stats", h.admin.GetStats)

	return e
}
