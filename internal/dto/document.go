package dto

import (
	"time"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// DocumentResponse defines the metadata returned for a stored document.
type DocumentResponse struct {
	DocumentID  string              `json:"documentID"`
	ShipmentID  string              `json:"shipmentID"`
	Type        domain.DocumentType `json:"type"`
	FileName    string              `json:"fileName"`
	ContentType string              `json:"contentType"`
	SizeBytes   int64               `json:"sizeBytes"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ListDocumentsResponse wraps the documents attached to a shipment.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  d.DocumentID,
		ShipmentID:  d.ShipmentID,
		Type:        d.Type,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToListDocumentsResponse converts a slice of domain documents.
func ToListDocumentsResponse(docs []domain.Document) *ListDocumentsResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return &ListDocumentsResponse{Documents: res}
}
