package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"multibagger-scanner/internal/scanner/config"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves liveness and non-sensitive configuration info.
type HealthHandler struct {
	cfg    *config.Config
	checks map[string]HealthCheck
}

// NewHealthHandler creates a HealthHandler. A dependency with a nil check is reported as disabled.
func NewHealthHandler(cfg *config.Config, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{cfg: cfg, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/api/info", h.Info)
}

// Health godoc
// @Summary Service health
// @Description Reports "ok" when every dependency answers, "degraded" otherwise. The scanner keeps working without its cache.
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	results := make(map[string]string, len(names))
	for _, name := range names {
		check := h.checks[name]
		switch {
		case check == nil:
			results[name] = "disabled"
		case check(ctx) != nil:
			results[name] = "unreachable"
			status = "degraded"
		default:
			results[name] = "connected"
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  status,
		"version": h.cfg.App.Version,
		"checks":  results,
	})
}

// Info godoc
// @Summary Non-sensitive configuration summary
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /api/info [get]
func (h *HealthHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":                   h.cfg.App.Name,
		"env":                    h.cfg.App.Env,
		"version":                h.cfg.App.Version,
		"database_host":          h.cfg.Database.Host,
		"database_port":          h.cfg.Database.Port,
		"cache_driver":           h.cfg.Cache.Driver,
		"redis_configured":       h.cfg.Redis.Host != "",
		"finnhub_configured":     h.cfg.Finnhub.APIKey != "",
		"max_request_per_minute": h.cfg.Finnhub.MaxRequestPerMinute,
		"max_concurrent_symbols": h.cfg.Scanner.MaxConcurrentSymbols,
	})
}
