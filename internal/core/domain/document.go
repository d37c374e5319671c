package domain

// DocumentType classifies a stored shipment document.
type DocumentType string

const (
	DocRateConfirmation DocumentType = "rate_confirmation"
	DocBillOfLading     DocumentType = "bill_of_lading"
	DocProofOfDelivery  DocumentType = "proof_of_delivery"
	DocOther            DocumentType = "other"
)

// Document is metadata for a file stored via the document store; the bytes
// themselves live in object storage (or on local disk).
type Document struct {
	DocumentID  string       `json:"documentID"`
	ShipmentID  string       `json:"shipmentID"`
	Type        DocumentType `json:"type"`
	FileName    string       `json:"fileName"`
	ContentType string       `json:"contentType"`
	StorageKey  string       `json:"storageKey"`
	SizeBytes   int64        `json:"sizeBytes"`
	AuditFields
}
