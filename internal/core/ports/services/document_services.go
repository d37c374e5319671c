package services

import (
	"context"
	"io"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// DocumentSvc defines operations for shipment documents.
type DocumentSvc interface {
	// GenerateRateConfirmation renders a rate confirmation PDF for a booked
	// shipment, stores it, and records its metadata.
	GenerateRateConfirmation(ctx context.Context, shipmentID string, requestingUserID string) (*domain.Document, error)

	// UploadDocument stores an externally supplied document against a shipment.
	UploadDocument(ctx context.Context, shipmentID string, docType domain.DocumentType, fileName string, contentType string, body io.Reader, size int64, requestingUserID string) (*domain.Document, error)

	// GetDocument returns document metadata together with a reader over its contents.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error)

	// ListDocumentsByShipment lists all documents attached to a shipment.
	ListDocumentsByShipment(ctx context.Context, shipmentID string) ([]domain.Document, error)

	// DeleteDocument removes a document's metadata and stored contents.
	DeleteDocument(ctx context.Context, documentID string, requestingUserID string) error
}
