package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSourceType mirrors domain.RateSourceType.
type RateSourceType string

// LaneRate is the lane_rates table row. TMS-sourced rows are unique on
// source_shipment_id via a partial unique index.
type LaneRate struct {
	LaneRateID string `json:"laneRateID"`

	OriginCity       string `json:"originCity"`
	OriginState      string `json:"originState"`
	OriginZip        string `json:"originZip"`
	DestinationCity  string `json:"destinationCity"`
	DestinationState string `json:"destinationState"`
	DestinationZip   string `json:"destinationZip"`

	CarrierID       *string `json:"carrierID"`
	ModeOfTransport string  `json:"modeOfTransport"`
	EquipmentType   string  `json:"equipmentType"`

	LineHaulRate             decimal.Decimal  `json:"lineHaulRate"`
	LineHaulCost             decimal.Decimal  `json:"lineHaulCost"`
	FSCPercentage            *decimal.Decimal `json:"fscPercentage"`
	CarrierFSCPercentage     *decimal.Decimal `json:"carrierFscPercentage"`
	ChassisCustomerCost      decimal.Decimal  `json:"chassisCustomerCost"`
	ChassisCarrierCost       decimal.Decimal  `json:"chassisCarrierCost"`
	TotalAccessorialCustomer decimal.Decimal  `json:"totalAccessorialCustomer"`
	TotalAccessorialCarrier  decimal.Decimal  `json:"totalAccessorialCarrier"`

	SourceType                RateSourceType `json:"sourceType"`
	SourceShipmentID          *string        `json:"sourceShipmentID"`
	SourceQuoteShipmentNumber string         `json:"sourceQuoteShipmentNumber"`

	RateDate time.Time `json:"rateDate"`
	Notes    string    `json:"notes"`
	IsActive bool      `json:"isActive"`

	AuditFields
}

// LaneRateAccessorial is the lane_rate_accessorials table row; populated only
// for manually entered lane rates.
type LaneRateAccessorial struct {
	ManualAccessorialID string          `json:"manualAccessorialID"`
	LaneRateID          string          `json:"laneRateID"`
	Name                string          `json:"name"`
	Cost                decimal.Decimal `json:"cost"`
	Notes               string          `json:"notes"`
}
