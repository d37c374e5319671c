package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// carrierHandler handles HTTP requests for carriers.
type carrierHandler struct {
	carrierService portssvc.CarrierSvc
}

func newCarrierHandler(cs portssvc.CarrierSvc) *carrierHandler {
	return &carrierHandler{carrierService: cs}
}

// RegisterCarrierRoutes registers all carrier routes.
func RegisterCarrierRoutes(rg *gin.RouterGroup, carrierService portssvc.CarrierSvc) {
	h := newCarrierHandler(carrierService)

	carriers := rg.Group("/carriers")
	{
		carriers.POST("", h.createCarrier)
		carriers.GET("", h.listCarriers)
		carriers.GET("/:id", h.getCarrier)
		carriers.PUT("/:id", h.updateCarrier)
		carriers.DELETE("/:id", h.deleteCarrier)
	}
}

// createCarrier godoc
// @Summary Create a carrier
// @Tags carriers
// @Accept json
// @Produce json
// @Param carrier body dto.CreateCarrierRequest true "Carrier details"
// @Success 201 {object} dto.CarrierResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers [post]
func (h *carrierHandler) createCarrier(c *gin.Context) {
	var req dto.CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	carrier, err := h.carrierService.CreateCarrier(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCarrierResponse(carrier))
}

// getCarrier godoc
// @Summary Get a carrier by ID
// @Tags carriers
// @Produce json
// @Param id path string true "Carrier ID"
// @Success 200 {object} dto.CarrierResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers/{id} [get]
func (h *carrierHandler) getCarrier(c *gin.Context) {
	carrier, err := h.carrierService.GetCarrierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCarrierResponse(carrier))
}

// listCarriers godoc
// @Summary List carriers
// @Tags carriers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCarriersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers [get]
func (h *carrierHandler) listCarriers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.carrierService.ListCarriers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateCarrier godoc
// @Summary Update a carrier
// @Tags carriers
// @Accept json
// @Produce json
// @Param id path string true "Carrier ID"
// @Param carrier body dto.UpdateCarrierRequest true "Fields to update"
// @Success 200 {object} dto.CarrierResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers/{id} [put]
func (h *carrierHandler) updateCarrier(c *gin.Context) {
	var req dto.UpdateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	carrier, err := h.carrierService.UpdateCarrier(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCarrierResponse(carrier))
}

// deleteCarrier godoc
// @Summary Delete a carrier
// @Tags carriers
// @Param id path string true "Carrier ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /carriers/{id} [delete]
func (h *carrierHandler) deleteCarrier(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.carrierService.DeleteCarrier(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
