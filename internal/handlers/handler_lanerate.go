package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// laneRateHandler handles HTTP requests for the lane rate database.
type laneRateHandler struct {
	laneRateService portssvc.LaneRateSvcFacade
}

func newLaneRateHandler(ls portssvc.LaneRateSvcFacade) *laneRateHandler {
	return &laneRateHandler{laneRateService: ls}
}

// RegisterLaneRateRoutes registers all lane-rate routes.
func RegisterLaneRateRoutes(rg *gin.RouterGroup, laneRateService portssvc.LaneRateSvcFacade) {
	h := newLaneRateHandler(laneRateService)

	laneRates := rg.Group("/lane-rates")
	{
		laneRates.POST("", h.createLaneRate)
		laneRates.GET("", h.listLaneRates)
		laneRates.GET("/:id", h.getLaneRate)
		laneRates.PUT("/:id", h.updateLaneRate)
		laneRates.DELETE("/:id", h.deleteLaneRate)
	}
}

// createLaneRate godoc
// @Summary Create a manual lane rate
// @Description Records a manually entered lane rate in the historical rate database.
// @Tags lane-rates
// @Accept json
// @Produce json
// @Param laneRate body dto.CreateLaneRateRequest true "Lane rate details"
// @Success 201 {object} dto.LaneRateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /lane-rates [post]
func (h *laneRateHandler) createLaneRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLaneRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	laneRate, err := h.laneRateService.CreateLaneRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create lane rate", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLaneRateResponse(laneRate))
}

// getLaneRate godoc
// @Summary Get a lane rate by ID
// @Tags lane-rates
// @Produce json
// @Param id path string true "Lane rate ID"
// @Success 200 {object} dto.LaneRateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /lane-rates/{id} [get]
func (h *laneRateHandler) getLaneRate(c *gin.Context) {
	laneRate, err := h.laneRateService.GetLaneRateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLaneRateResponse(laneRate))
}

// listLaneRates godoc
// @Summary Search lane rates
// @Description Retrieves a filtered, token-paginated list of historical lane rates, newest rate date first.
// @Tags lane-rates
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param originCity query string false "Filter by origin city"
// @Param originState query string false "Filter by origin state"
// @Param destinationCity query string false "Filter by destination city"
// @Param destinationState query string false "Filter by destination state"
// @Param carrierID query string false "Filter by carrier"
// @Param mode query string false "Filter by mode of transport"
// @Param equipmentType query string false "Filter by equipment type"
// @Param sourceType query string false "Filter by source type"
// @Param activeOnly query bool false "Only active rates"
// @Success 200 {object} dto.ListLaneRatesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /lane-rates [get]
func (h *laneRateHandler) listLaneRates(c *gin.Context) {
	var params dto.ListLaneRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.laneRateService.ListLaneRates(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateLaneRate godoc
// @Summary Update a lane rate
// @Tags lane-rates
// @Accept json
// @Produce json
// @Param id path string true "Lane rate ID"
// @Param laneRate body dto.UpdateLaneRateRequest true "Fields to update"
// @Success 200 {object} dto.LaneRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /lane-rates/{id} [put]
func (h *laneRateHandler) updateLaneRate(c *gin.Context) {
	var req dto.UpdateLaneRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	laneRate, err := h.laneRateService.UpdateLaneRate(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLaneRateResponse(laneRate))
}

// deleteLaneRate godoc
// @Summary Delete a lane rate
// @Tags lane-rates
// @Param id path string true "Lane rate ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /lane-rates/{id} [delete]
func (h *laneRateHandler) deleteLaneRate(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.laneRateService.DeleteLaneRate(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
