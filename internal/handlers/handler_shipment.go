package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// shipmentHandler handles HTTP requests for shipments and quotes.
type shipmentHandler struct {
	shipmentService portssvc.ShipmentSvcFacade
}

func newShipmentHandler(ss portssvc.ShipmentSvcFacade) *shipmentHandler {
	return &shipmentHandler{shipmentService: ss}
}

// RegisterShipmentRoutes registers all shipment-related routes.
func RegisterShipmentRoutes(rg *gin.RouterGroup, shipmentService portssvc.ShipmentSvcFacade, documentService portssvc.DocumentSvc) {
	h := newShipmentHandler(shipmentService)
	dh := newDocumentHandler(documentService)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("", h.createShipment)
		shipments.GET("", h.listShipments)
		shipments.GET("/:id", h.getShipment)
		shipments.PUT("/:id", h.updateShipment)
		shipments.DELETE("/:id", h.deleteShipment)

		shipments.GET("/:id/documents", dh.listShipmentDocuments)
		shipments.POST("/:id/documents", dh.uploadDocument)
		shipments.POST("/:id/rate-confirmation", dh.generateRateConfirmation)
	}
}

// createShipment godoc
// @Summary Create a shipment or quote
// @Description Creates a shipment, assigns its number, and derives all financial totals.
// @Tags shipments
// @Accept json
// @Produce json
// @Param shipment body dto.CreateShipmentRequest true "Shipment details"
// @Success 201 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments [post]
func (h *shipmentHandler) createShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create shipment", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShipmentResponse(shipment))
}

// getShipment godoc
// @Summary Get a shipment by ID
// @Tags shipments
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{id} [get]
func (h *shipmentHandler) getShipment(c *gin.Context) {
	shipment, err := h.shipmentService.GetShipmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// listShipments godoc
// @Summary List shipments
// @Description Retrieves a filtered, token-paginated list of shipments.
// @Tags shipments
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Filter by status"
// @Param shipperID query string false "Filter by shipper"
// @Param carrierID query string false "Filter by carrier"
// @Param quotesOnly query bool false "Only quote statuses"
// @Success 200 {object} dto.ListShipmentsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments [get]
func (h *shipmentHandler) listShipments(c *gin.Context) {
	var params dto.ListShipmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.shipmentService.ListShipments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateShipment godoc
// @Summary Update a shipment
// @Description Applies a partial update and re-derives all financial totals. The shipment number never changes.
// @Tags shipments
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param shipment body dto.UpdateShipmentRequest true "Fields to update"
// @Success 200 {object} dto.ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{id} [put]
func (h *shipmentHandler) updateShipment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		logger.Error("Failed to update shipment", slog.String("shipment_id", c.Param("id")), slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShipmentResponse(shipment))
}

// deleteShipment godoc
// @Summary Delete a shipment
// @Description Removes a shipment along with any lane rate derived from it.
// @Tags shipments
// @Param id path string true "Shipment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{id} [delete]
func (h *shipmentHandler) deleteShipment(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.shipmentService.DeleteShipment(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
