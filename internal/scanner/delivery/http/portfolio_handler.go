package http

import (
	"net/http"
	"strconv"

	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/service"
	"multibagger-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for the watchlist.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateItem)
	g.GET("", h.GetAllItems)
	g.GET("/:id", h.GetItemByID)
	g.PUT("/:id", h.UpdateItem)
	g.DELETE("/:id", h.DeleteItem)
}

// CreateItem godoc
// @Summary Add a symbol to the portfolio
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   item  body    dto.CreatePortfolioItemRequest   true    "Item to add"
// @Success 201 {object} dto.PortfolioItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio [post]
func (h *PortfolioHandler) CreateItem(c echo.Context) error {
	var req dto.CreatePortfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	item, err := h.portfolioService.CreateItem(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

// GetItemByID godoc
// @Summary Get a portfolio item by ID
// @Tags portfolio
// @Produce  json
// @Param   id  path    int true    "Item ID"
// @Success 200 {object} dto.PortfolioItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/{id} [get]
func (h *PortfolioHandler) GetItemByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	item, err := h.portfolioService.GetItemByID(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, item)
}

// GetAllItems godoc
// @Summary List the portfolio
// @Tags portfolio
// @Produce  json
// @Success 200 {array} dto.PortfolioItemResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) GetAllItems(c echo.Context) error {
	items, err := h.portfolioService.GetAllItems(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get portfolio items", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get portfolio items"})
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateItem godoc
// @Summary Update a portfolio item
// @Description Partial update; omitted fields keep their value
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Item ID"
// @Param   item  body    dto.UpdatePortfolioItemRequest   true    "Fields to change"
// @Success 200 {object} dto.PortfolioItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/{id} [put]
func (h *PortfolioHandler) UpdateItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	var req dto.UpdatePortfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	item, err := h.portfolioService.UpdateItem(c.Request().Context(), uint(id), &req)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Remove a portfolio item
// @Tags portfolio
// @Param   id  path    int true    "Item ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	if err := h.portfolioService.DeleteItem(c.Request().Context(), uint(id)); err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
