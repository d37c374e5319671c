package repositories

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// DocumentRepository defines persistence operations for document metadata.
// The document bytes themselves live in object storage.
type DocumentRepository interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByShipment(ctx context.Context, shipmentID string) ([]domain.Document, error)
	SaveDocument(ctx context.Context, document domain.Document) error
	DeleteDocument(ctx context.Context, documentID string) error
}
