package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus mirrors domain.ShipmentStatus at the persistence layer.
type ShipmentStatus string

// StopType mirrors domain.StopType.
type StopType string

// Shipment is the shipments table row. Stops and accessorials live in their
// own tables, keyed by shipment_id and ordered by sequence.
type Shipment struct {
	ShipmentID      string         `json:"shipmentID"`
	ShipmentNumber  string         `json:"shipmentNumber"`
	Status          ShipmentStatus `json:"status"`
	ShipperID       *string        `json:"shipperID"`
	CarrierID       *string        `json:"carrierID"`
	ModeOfTransport string         `json:"modeOfTransport"`
	EquipmentType   string         `json:"equipmentType"`

	CustomerRate        decimal.Decimal `json:"customerRate"`
	CarrierCostTotal    decimal.Decimal `json:"carrierCostTotal"`
	FSCType             string          `json:"fscType"`
	FSCCustomerAmount   decimal.Decimal `json:"fscCustomerAmount"`
	FSCCarrierAmount    decimal.Decimal `json:"fscCarrierAmount"`
	ChassisCustomerCost decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost  decimal.Decimal `json:"chassisCarrierCost"`

	TotalCustomerRate decimal.Decimal `json:"totalCustomerRate"`
	TotalCarrierCost  decimal.Decimal `json:"totalCarrierCost"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	Margin            decimal.Decimal `json:"margin"`

	QuoteNotes    string `json:"quoteNotes"`
	InternalNotes string `json:"internalNotes"`

	AuditFields
}

// ShipmentStop is the shipment_stops table row.
type ShipmentStop struct {
	StopID            string     `json:"stopID"`
	ShipmentID        string     `json:"shipmentID"`
	Sequence          int        `json:"sequence"`
	Type              StopType   `json:"type"`
	LocationName      string     `json:"locationName"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	Zip               string     `json:"zip"`
	AppointmentAt     *time.Time `json:"appointmentAt"`
	AppointmentNotes  string     `json:"appointmentNotes"`
	IsLaneOrigin      bool       `json:"isLaneOrigin"`
	IsLaneDestination bool       `json:"isLaneDestination"`
}

// ShipmentAccessorial is the shipment_accessorials table row.
type ShipmentAccessorial struct {
	AccessorialID string          `json:"accessorialID"`
	ShipmentID    string          `json:"shipmentID"`
	Name          string          `json:"name"`
	CustomerRate  decimal.Decimal `json:"customerRate"`
	CarrierCost   decimal.Decimal `json:"carrierCost"`
	Quantity      decimal.Decimal `json:"quantity"`
}
