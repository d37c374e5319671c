package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSourceType records where a lane rate came from.
type RateSourceType string

const (
	SourceTMSShipment RateSourceType = "TMS_SHIPMENT"
	SourceManualEntry RateSourceType = "MANUAL_ENTRY"
	SourceRateImport  RateSourceType = "RATE_IMPORT"
)

// ManualAccessorial is an ad-hoc accessorial attached to a manually entered
// lane rate. TMS-derived rates carry accessorial totals instead.
type ManualAccessorial struct {
	ManualAccessorialID string          `json:"manualAccessorialID"`
	Name                string          `json:"name"`
	Cost                decimal.Decimal `json:"cost"`
	Notes               string          `json:"notes,omitempty"`
}

// LaneRate is a normalized market-rate record for one
// origin/destination/carrier/mode combination instance.
//
// TMS-derived rows are keyed by SourceShipmentID: at most one active row per
// source shipment, updated in place as the shipment is edited. Manually
// entered rows are owned by users and never touched by the recorder.
type LaneRate struct {
	LaneRateID string `json:"laneRateID"`

	OriginCity       string `json:"originCity"`
	OriginState      string `json:"originState"`
	OriginZip        string `json:"originZip,omitempty"`
	DestinationCity  string `json:"destinationCity"`
	DestinationState string `json:"destinationState"`
	DestinationZip   string `json:"destinationZip,omitempty"`

	CarrierID       *string `json:"carrierID,omitempty"`
	ModeOfTransport string  `json:"modeOfTransport"`
	EquipmentType   string  `json:"equipmentType"`

	// Cost components are stored separately so lane comparisons stay
	// apples-to-apples on the raw line haul.
	LineHaulRate             decimal.Decimal  `json:"lineHaulRate"`
	LineHaulCost             decimal.Decimal  `json:"lineHaulCost"`
	FSCPercentage            *decimal.Decimal `json:"fscPercentage,omitempty"`
	CarrierFSCPercentage     *decimal.Decimal `json:"carrierFscPercentage,omitempty"`
	ChassisCustomerCost      decimal.Decimal  `json:"chassisCustomerCost"`
	ChassisCarrierCost       decimal.Decimal  `json:"chassisCarrierCost"`
	TotalAccessorialCustomer decimal.Decimal  `json:"totalAccessorialCustomer"`
	TotalAccessorialCarrier  decimal.Decimal  `json:"totalAccessorialCarrier"`

	SourceType                RateSourceType `json:"sourceType"`
	SourceShipmentID          *string        `json:"sourceShipmentID,omitempty"`
	SourceQuoteShipmentNumber string         `json:"sourceQuoteShipmentNumber,omitempty"`

	RateDate time.Time `json:"rateDate"`
	Notes    string    `json:"notes,omitempty"`
	IsActive bool      `json:"isActive"`

	ManualAccessorials []ManualAccessorial `json:"manualAccessorials,omitempty"`

	AuditFields
}
