package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// shipperHandler handles HTTP requests for shippers.
type shipperHandler struct {
	shipperService portssvc.ShipperSvc
}

func newShipperHandler(ss portssvc.ShipperSvc) *shipperHandler {
	return &shipperHandler{shipperService: ss}
}

// RegisterShipperRoutes registers all shipper routes.
func RegisterShipperRoutes(rg *gin.RouterGroup, shipperService portssvc.ShipperSvc) {
	h := newShipperHandler(shipperService)

	shippers := rg.Group("/shippers")
	{
		shippers.POST("", h.createShipper)
		shippers.GET("", h.listShippers)
		shippers.GET("/:id", h.getShipper)
		shippers.PUT("/:id", h.updateShipper)
		shippers.DELETE("/:id", h.deleteShipper)
	}
}

// createShipper godoc
// @Summary Create a shipper
// @Tags shippers
// @Accept json
// @Produce json
// @Param shipper body dto.CreateShipperRequest true "Shipper details"
// @Success 201 {object} dto.ShipperResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /shippers [post]
func (h *shipperHandler) createShipper(c *gin.Context) {
	var req dto.CreateShipperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	shipper, err := h.shipperService.CreateShipper(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToShipperResponse(shipper))
}

// getShipper godoc
// @Summary Get a shipper by ID
// @Tags shippers
// @Produce json
// @Param id path string true "Shipper ID"
// @Success 200 {object} dto.ShipperResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shippers/{id} [get]
func (h *shipperHandler) getShipper(c *gin.Context) {
	shipper, err := h.shipperService.GetShipperByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipperResponse(shipper))
}

// listShippers godoc
// @Summary List shippers
// @Tags shippers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListShippersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /shippers [get]
func (h *shipperHandler) listShippers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.shipperService.ListShippers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateShipper godoc
// @Summary Update a shipper
// @Tags shippers
// @Accept json
// @Produce json
// @Param id path string true "Shipper ID"
// @Param shipper body dto.UpdateShipperRequest true "Fields to update"
// @Success 200 {object} dto.ShipperResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shippers/{id} [put]
func (h *shipperHandler) updateShipper(c *gin.Context) {
	var req dto.UpdateShipperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	shipper, err := h.shipperService.UpdateShipper(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipperResponse(shipper))
}

// deleteShipper godoc
// @Summary Delete a shipper
// @Tags shippers
// @Param id path string true "Shipper ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shippers/{id} [delete]
func (h *shipperHandler) deleteShipper(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.shipperService.DeleteShipper(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
