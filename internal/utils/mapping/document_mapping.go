package mapping

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		ShipmentID:  d.ShipmentID,
		Type:        string(d.Type),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		StorageKey:  d.StorageKey,
		SizeBytes:   d.SizeBytes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		ShipmentID:  m.ShipmentID,
		Type:        domain.DocumentType(m.Type),
		FileName:    m.FileName,
		ContentType: m.ContentType,
		StorageKey:  m.StorageKey,
		SizeBytes:   m.SizeBytes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
