package models

// Document is the documents table row.
type Document struct {
	DocumentID  string `json:"documentID"`
	ShipmentID  string `json:"shipmentID"`
	Type        string `json:"type"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	StorageKey  string `json:"storageKey"`
	SizeBytes   int64  `json:"sizeBytes"`
	AuditFields
}
