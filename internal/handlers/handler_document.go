package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

const maxUploadBytes = 25 << 20 // 25 MiB

// documentHandler handles HTTP requests for shipment documents. Shipment-
// scoped routes (upload, list, rate confirmation) are registered alongside
// the shipment routes; document-scoped routes live under /documents.
type documentHandler struct {
	documentService portssvc.DocumentSvc
}

func newDocumentHandler(ds portssvc.DocumentSvc) *documentHandler {
	return &documentHandler{documentService: ds}
}

// RegisterDocumentRoutes registers the document-scoped routes.
func RegisterDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvc) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.GET("/:id", h.downloadDocument)
		documents.DELETE("/:id", h.deleteDocument)
	}
}

// generateRateConfirmation godoc
// @Summary Generate a rate confirmation PDF
// @Description Renders a carrier-facing rate confirmation for the shipment and stores it as a document.
// @Tags documents
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Shipment has no carrier assigned"
// @Security BearerAuth
// @Router /shipments/{id}/rate-confirmation [post]
func (h *documentHandler) generateRateConfirmation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.documentService.GenerateRateConfirmation(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		logger.Error("Failed to generate rate confirmation", slog.String("shipment_id", c.Param("id")), slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// uploadDocument godoc
// @Summary Upload a document for a shipment
// @Description Accepts a multipart file upload and attaches it to the shipment.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Shipment ID"
// @Param file formData file true "Document file"
// @Param type formData string false "Document type" Enums(rate_confirmation, bill_of_lading, proof_of_delivery, other) default(other)
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{id}/documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file in form data"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File exceeds maximum upload size"})
		return
	}

	docType := domain.DocumentType(c.DefaultPostForm("type", string(domain.DocOther)))
	switch docType {
	case domain.DocRateConfirmation, domain.DocBillOfLading, domain.DocProofOfDelivery, domain.DocOther:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Unknown document type %q", docType)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.documentService.UploadDocument(
		c.Request.Context(),
		c.Param("id"),
		docType,
		fileHeader.Filename,
		contentType,
		file,
		fileHeader.Size,
		requestingUserID,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listShipmentDocuments godoc
// @Summary List a shipment's documents
// @Tags documents
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /shipments/{id}/documents [get]
func (h *documentHandler) listShipmentDocuments(c *gin.Context) {
	docs, err := h.documentService.ListDocumentsByShipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

// downloadDocument godoc
// @Summary Download a document
// @Description Streams the stored document contents.
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) downloadDocument(c *gin.Context) {
	doc, body, err := h.documentService.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.ContentType, body, nil)
}

// deleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
