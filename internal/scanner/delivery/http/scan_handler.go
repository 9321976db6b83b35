package http

import (
	"net/http"
	"strconv"

	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/service"
	"multibagger-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScanHandler handles HTTP requests for scans and their history.
type ScanHandler struct {
	scannerService service.ScannerService
	logger         *logger.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scannerService service.ScannerService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{scannerService: scannerService, logger: logger}
}

// RegisterRoutes registers the scan routes to the Echo group.
func (h *ScanHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/scan", h.Scan)
	g.GET("/scans", h.ListScans)
	g.GET("/scans/:id", h.GetScan)
	g.DELETE("/cache", h.ClearCache)
}

// Scan godoc
// @Summary Run a multibagger scan
// @Description Screens the given symbols against the optional thresholds. Symbols without usable data are omitted.
// @Tags scans
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ScanRequest   true    "Symbols and thresholds"
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scan [post]
func (h *ScanHandler) Scan(c echo.Context) error {
	var req dto.ScanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	resp, err := h.scannerService.Scan(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListScans godoc
// @Summary List recent scans
// @Tags scans
// @Produce  json
// @Param   limit  query    int false    "Maximum number of runs (default 20, max 100)"
// @Success 200 {array} dto.ScanRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scans [get]
func (h *ScanHandler) ListScans(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = n
	}

	runs, err := h.scannerService.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list scans"})
	}
	return c.JSON(http.StatusOK, runs)
}

// GetScan godoc
// @Summary Get a scan with its results
// @Tags scans
// @Produce  json
// @Param   id  path    int true    "Scan run ID"
// @Success 200 {object} dto.ScanRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /scans/{id} [get]
func (h *ScanHandler) GetScan(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid scan ID"})
	}

	run, err := h.scannerService.GetRun(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

// ClearCache godoc
// @Summary Clear cached provider responses
// @Tags cache
// @Produce  json
// @Success 200 {object} dto.ClearCacheResponse
// @Router /cache [delete]
func (h *ScanHandler) ClearCache(c echo.Context) error {
	n := h.scannerService.ClearCache(c.Request().Context())
	return c.JSON(http.StatusOK, dto.ClearCacheResponse{Deleted: n})
}
