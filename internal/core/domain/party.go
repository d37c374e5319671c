package domain

// Shipper is a customer that tenders freight.
type Shipper struct {
	ShipperID    string `json:"shipperID"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Carrier is a motor carrier that hauls freight. Lane rates are
// carrier-specific, so shipments without a carrier never produce one.
type Carrier struct {
	CarrierID      string   `json:"carrierID"`
	Name           string   `json:"name"`
	MCNumber       string   `json:"mcNumber,omitempty"`
	DOTNumber      string   `json:"dotNumber,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	EquipmentTypes []string `json:"equipmentTypes,omitempty"`
	ContactName    string   `json:"contactName,omitempty"`
	ContactEmail   string   `json:"contactEmail,omitempty"`
	ContactPhone   string   `json:"contactPhone,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	IsActive       bool     `json:"isActive"`
	AuditFields
}
