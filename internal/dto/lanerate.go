package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// ManualAccessorialRequest defines one ad-hoc accessorial on a manual lane rate.
type ManualAccessorialRequest struct {
	Name  string          `json:"name" binding:"required"`
	Cost  decimal.Decimal `json:"cost"`
	Notes string          `json:"notes"`
}

// CreateLaneRateRequest defines the data needed to record a manual lane rate.
type CreateLaneRateRequest struct {
	OriginCity       string `json:"originCity" binding:"required"`
	OriginState      string `json:"originState" binding:"required"`
	OriginZip        string `json:"originZip"`
	DestinationCity  string `json:"destinationCity" binding:"required"`
	DestinationState string `json:"destinationState" binding:"required"`
	DestinationZip   string `json:"destinationZip"`

	CarrierID       *string `json:"carrierID"`
	ModeOfTransport string  `json:"modeOfTransport"`
	EquipmentType   string  `json:"equipmentType"`

	LineHaulRate         decimal.Decimal  `json:"lineHaulRate"`
	LineHaulCost         decimal.Decimal  `json:"lineHaulCost"`
	FSCPercentage        *decimal.Decimal `json:"fscPercentage"`
	CarrierFSCPercentage *decimal.Decimal `json:"carrierFscPercentage"`
	ChassisCustomerCost  decimal.Decimal  `json:"chassisCustomerCost"`
	ChassisCarrierCost   decimal.Decimal  `json:"chassisCarrierCost"`

	RateDate time.Time `json:"rateDate"`
	Notes    string    `json:"notes"`

	ManualAccessorials []ManualAccessorialRequest `json:"manualAccessorials" binding:"omitempty,dive"`
}

// UpdateLaneRateRequest defines the data allowed when updating a lane rate.
type UpdateLaneRateRequest struct {
	OriginCity       *string `json:"originCity"`
	OriginState      *string `json:"originState"`
	OriginZip        *string `json:"originZip"`
	DestinationCity  *string `json:"destinationCity"`
	DestinationState *string `json:"destinationState"`
	DestinationZip   *string `json:"destinationZip"`

	CarrierID       *string `json:"carrierID"`
	ModeOfTransport *string `json:"modeOfTransport"`
	EquipmentType   *string `json:"equipmentType"`

	LineHaulRate         *decimal.Decimal `json:"lineHaulRate"`
	LineHaulCost         *decimal.Decimal `json:"lineHaulCost"`
	FSCPercentage        *decimal.Decimal `json:"fscPercentage"`
	CarrierFSCPercentage *decimal.Decimal `json:"carrierFscPercentage"`
	ChassisCustomerCost  *decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost   *decimal.Decimal `json:"chassisCarrierCost"`

	RateDate *time.Time `json:"rateDate"`
	Notes    *string    `json:"notes"`
	IsActive *bool      `json:"isActive"`

	ManualAccessorials []ManualAccessorialRequest `json:"manualAccessorials" binding:"omitempty,dive"`
}

// ListLaneRatesParams defines query parameters for searching lane rates.
type ListLaneRatesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`

	OriginCity       *string `form:"originCity"`
	OriginState      *string `form:"originState"`
	DestinationCity  *string `form:"destinationCity"`
	DestinationState *string `form:"destinationState"`
	CarrierID        *string `form:"carrierID"`
	ModeOfTransport  *string `form:"mode"`
	EquipmentType    *string `form:"equipmentType"`
	SourceType       *string `form:"sourceType" binding:"omitempty,oneof=TMS_SHIPMENT MANUAL_ENTRY RATE_IMPORT"`
	ActiveOnly       bool    `form:"activeOnly"`
}

// ManualAccessorialResponse defines the data returned for a manual accessorial.
type ManualAccessorialResponse struct {
	ManualAccessorialID string          `json:"manualAccessorialID"`
	Name                string          `json:"name"`
	Cost                decimal.Decimal `json:"cost"`
	Notes               string          `json:"notes,omitempty"`
}

// LaneRateResponse defines the data returned for a lane rate.
type LaneRateResponse struct {
	LaneRateID string `json:"laneRateID"`

	OriginCity       string `json:"originCity"`
	OriginState      string `json:"originState"`
	OriginZip        string `json:"originZip,omitempty"`
	DestinationCity  string `json:"destinationCity"`
	DestinationState string `json:"destinationState"`
	DestinationZip   string `json:"destinationZip,omitempty"`

	CarrierID       *string `json:"carrierID,omitempty"`
	ModeOfTransport string  `json:"modeOfTransport,omitempty"`
	EquipmentType   string  `json:"equipmentType,omitempty"`

	LineHaulRate             decimal.Decimal  `json:"lineHaulRate"`
	LineHaulCost             decimal.Decimal  `json:"lineHaulCost"`
	FSCPercentage            *decimal.Decimal `json:"fscPercentage,omitempty"`
	CarrierFSCPercentage     *decimal.Decimal `json:"carrierFscPercentage,omitempty"`
	ChassisCustomerCost      decimal.Decimal  `json:"chassisCustomerCost"`
	ChassisCarrierCost       decimal.Decimal  `json:"chassisCarrierCost"`
	TotalAccessorialCustomer decimal.Decimal  `json:"totalAccessorialCustomer"`
	TotalAccessorialCarrier  decimal.Decimal  `json:"totalAccessorialCarrier"`

	SourceType                domain.RateSourceType `json:"sourceType"`
	SourceShipmentID          *string               `json:"sourceShipmentID,omitempty"`
	SourceQuoteShipmentNumber string                `json:"sourceQuoteShipmentNumber,omitempty"`

	RateDate time.Time `json:"rateDate"`
	Notes    string    `json:"notes,omitempty"`
	IsActive bool      `json:"isActive"`

	ManualAccessorials []ManualAccessorialResponse `json:"manualAccessorials,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListLaneRatesResponse wraps a page of lane rates with the pagination token.
type ListLaneRatesResponse struct {
	LaneRates []LaneRateResponse `json:"laneRates"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToLaneRateResponse converts a domain.LaneRate to LaneRateResponse DTO.
func ToLaneRateResponse(lr *domain.LaneRate) LaneRateResponse {
	var accessorials []ManualAccessorialResponse
	if len(lr.ManualAccessorials) > 0 {
		accessorials = make([]ManualAccessorialResponse, len(lr.ManualAccessorials))
		for i, ma := range lr.ManualAccessorials {
			accessorials[i] = ManualAccessorialResponse{
				ManualAccessorialID: ma.ManualAccessorialID,
				Name:                ma.Name,
				Cost:                ma.Cost,
				Notes:               ma.Notes,
			}
		}
	}
	return LaneRateResponse{
		LaneRateID:                lr.LaneRateID,
		OriginCity:                lr.OriginCity,
		OriginState:               lr.OriginState,
		OriginZip:                 lr.OriginZip,
		DestinationCity:           lr.DestinationCity,
		DestinationState:          lr.DestinationState,
		DestinationZip:            lr.DestinationZip,
		CarrierID:                 lr.CarrierID,
		ModeOfTransport:           lr.ModeOfTransport,
		EquipmentType:             lr.EquipmentType,
		LineHaulRate:              lr.LineHaulRate,
		LineHaulCost:              lr.LineHaulCost,
		FSCPercentage:             lr.FSCPercentage,
		CarrierFSCPercentage:      lr.CarrierFSCPercentage,
		ChassisCustomerCost:       lr.ChassisCustomerCost,
		ChassisCarrierCost:        lr.ChassisCarrierCost,
		TotalAccessorialCustomer:  lr.TotalAccessorialCustomer,
		TotalAccessorialCarrier:   lr.TotalAccessorialCarrier,
		SourceType:                lr.SourceType,
		SourceShipmentID:          lr.SourceShipmentID,
		SourceQuoteShipmentNumber: lr.SourceQuoteShipmentNumber,
		RateDate:                  lr.RateDate,
		Notes:                     lr.Notes,
		IsActive:                  lr.IsActive,
		ManualAccessorials:        accessorials,
		CreatedAt:                 lr.CreatedAt,
		CreatedBy:                 lr.CreatedBy,
		LastUpdatedAt:             lr.LastUpdatedAt,
		LastUpdatedBy:             lr.LastUpdatedBy,
	}
}

// ToListLaneRatesResponse converts a page of domain lane rates plus its token.
func ToListLaneRatesResponse(laneRates []domain.LaneRate, nextToken *string) *ListLaneRatesResponse {
	res := make([]LaneRateResponse, len(laneRates))
	for i := range laneRates {
		res[i] = ToLaneRateResponse(&laneRates[i])
	}
	return &ListLaneRatesResponse{LaneRates: res, NextToken: nextToken}
}
