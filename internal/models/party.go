package models

// Shipper is the shippers table row.
type Shipper struct {
	ShipperID    string `json:"shipperID"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Carrier is the carriers table row. EquipmentTypes is stored as a text array.
type Carrier struct {
	CarrierID      string   `json:"carrierID"`
	Name           string   `json:"name"`
	MCNumber       string   `json:"mcNumber"`
	DOTNumber      string   `json:"dotNumber"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	EquipmentTypes []string `json:"equipmentTypes"`
	ContactName    string   `json:"contactName"`
	ContactEmail   string   `json:"contactEmail"`
	ContactPhone   string   `json:"contactPhone"`
	Notes          string   `json:"notes"`
	IsActive       bool     `json:"isActive"`
	AuditFields
}
