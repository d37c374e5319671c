package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// StopRequest defines one stop in a create/update shipment request. Stops are
// replaced wholesale on update; order in the slice is the route order.
type StopRequest struct {
	Type              domain.StopType `json:"type" binding:"required,oneof=pickup dropoff port rail_ramp other"`
	LocationName      string          `json:"locationName"`
	Address           string          `json:"address"`
	City              string          `json:"city" binding:"required"`
	State             string          `json:"state" binding:"required"`
	Zip               string          `json:"zip"`
	AppointmentAt     *time.Time      `json:"appointmentAt"`
	AppointmentNotes  string          `json:"appointmentNotes"`
	IsLaneOrigin      bool            `json:"isLaneOrigin"`
	IsLaneDestination bool            `json:"isLaneDestination"`
}

// AccessorialRequest defines one accessorial line item in a shipment request.
type AccessorialRequest struct {
	Name         string          `json:"name" binding:"required"`
	CustomerRate decimal.Decimal `json:"customerRate"`
	CarrierCost  decimal.Decimal `json:"carrierCost"`
	Quantity     decimal.Decimal `json:"quantity"` // zero defaults to 1
}

// CreateShipmentRequest defines the data needed to create a shipment or quote.
// Derived totals are never accepted from the client.
type CreateShipmentRequest struct {
	Status          domain.ShipmentStatus `json:"status" binding:"required"`
	ShipperID       *string               `json:"shipperID"`
	CarrierID       *string               `json:"carrierID"`
	ModeOfTransport string                `json:"modeOfTransport"`
	EquipmentType   string                `json:"equipmentType"`

	Stops        []StopRequest        `json:"stops" binding:"dive"`
	Accessorials []AccessorialRequest `json:"accessorials" binding:"dive"`

	CustomerRate        decimal.Decimal `json:"customerRate"`
	CarrierCostTotal    decimal.Decimal `json:"carrierCostTotal"`
	FSCType             domain.FSCType  `json:"fscType" binding:"omitempty,oneof=fixed percentage"`
	FSCCustomerAmount   decimal.Decimal `json:"fscCustomerAmount"`
	FSCCarrierAmount    decimal.Decimal `json:"fscCarrierAmount"`
	ChassisCustomerCost decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost  decimal.Decimal `json:"chassisCarrierCost"`

	QuoteNotes    string `json:"quoteNotes"`
	InternalNotes string `json:"internalNotes"`
}

// UpdateShipmentRequest defines the data allowed when updating a shipment.
// Pointer fields distinguish "not provided" from explicit zero values; nil
// slices leave the stored stops/accessorials untouched while empty slices
// clear them. The shipment number cannot be changed.
type UpdateShipmentRequest struct {
	Status          *domain.ShipmentStatus `json:"status"`
	ShipperID       *string                `json:"shipperID"`
	CarrierID       *string                `json:"carrierID"`
	ModeOfTransport *string                `json:"modeOfTransport"`
	EquipmentType   *string                `json:"equipmentType"`

	Stops        []StopRequest        `json:"stops" binding:"omitempty,dive"`
	Accessorials []AccessorialRequest `json:"accessorials" binding:"omitempty,dive"`

	CustomerRate        *decimal.Decimal `json:"customerRate"`
	CarrierCostTotal    *decimal.Decimal `json:"carrierCostTotal"`
	FSCType             *domain.FSCType  `json:"fscType" binding:"omitempty,oneof=fixed percentage ''"`
	FSCCustomerAmount   *decimal.Decimal `json:"fscCustomerAmount"`
	FSCCarrierAmount    *decimal.Decimal `json:"fscCarrierAmount"`
	ChassisCustomerCost *decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost  *decimal.Decimal `json:"chassisCarrierCost"`

	QuoteNotes    *string `json:"quoteNotes"`
	InternalNotes *string `json:"internalNotes"`
}

// ListShipmentsParams defines query parameters for listing shipments.
type ListShipmentsParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	Status     *string `form:"status"`
	ShipperID  *string `form:"shipperID"`
	CarrierID  *string `form:"carrierID"`
	QuotesOnly bool    `form:"quotesOnly"`
}

// StopResponse defines the data returned for a shipment stop.
type StopResponse struct {
	StopID            string          `json:"stopID"`
	Sequence          int             `json:"sequence"`
	Type              domain.StopType `json:"type"`
	LocationName      string          `json:"locationName,omitempty"`
	Address           string          `json:"address,omitempty"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	Zip               string          `json:"zip,omitempty"`
	AppointmentAt     *time.Time      `json:"appointmentAt,omitempty"`
	AppointmentNotes  string          `json:"appointmentNotes,omitempty"`
	IsLaneOrigin      bool            `json:"isLaneOrigin"`
	IsLaneDestination bool            `json:"isLaneDestination"`
}

// AccessorialResponse defines the data returned for an accessorial line item.
type AccessorialResponse struct {
	AccessorialID string          `json:"accessorialID"`
	Name          string          `json:"name"`
	CustomerRate  decimal.Decimal `json:"customerRate"`
	CarrierCost   decimal.Decimal `json:"carrierCost"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ShipmentResponse defines the data returned for a shipment, including the
// derived financial totals.
type ShipmentResponse struct {
	ShipmentID      string                `json:"shipmentID"`
	ShipmentNumber  string                `json:"shipmentNumber"`
	Status          domain.ShipmentStatus `json:"status"`
	ShipperID       *string               `json:"shipperID,omitempty"`
	CarrierID       *string               `json:"carrierID,omitempty"`
	ModeOfTransport string                `json:"modeOfTransport,omitempty"`
	EquipmentType   string                `json:"equipmentType,omitempty"`

	Stops        []StopResponse        `json:"stops"`
	Accessorials []AccessorialResponse `json:"accessorials"`

	CustomerRate        decimal.Decimal `json:"customerRate"`
	CarrierCostTotal    decimal.Decimal `json:"carrierCostTotal"`
	FSCType             domain.FSCType  `json:"fscType,omitempty"`
	FSCCustomerAmount   decimal.Decimal `json:"fscCustomerAmount"`
	FSCCarrierAmount    decimal.Decimal `json:"fscCarrierAmount"`
	ChassisCustomerCost decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost  decimal.Decimal `json:"chassisCarrierCost"`

	TotalCustomerRate decimal.Decimal `json:"totalCustomerRate"`
	TotalCarrierCost  decimal.Decimal `json:"totalCarrierCost"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	Margin            decimal.Decimal `json:"margin"`

	QuoteNotes    string `json:"quoteNotes,omitempty"`
	InternalNotes string `json:"internalNotes,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListShipmentsResponse wraps a page of shipments with the pagination token.
type ListShipmentsResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToStopResponse converts a domain.Stop to StopResponse DTO.
func ToStopResponse(s *domain.Stop) StopResponse {
	return StopResponse{
		StopID:            s.StopID,
		Sequence:          s.Sequence,
		Type:              s.Type,
		LocationName:      s.LocationName,
		Address:           s.Address,
		City:              s.City,
		State:             s.State,
		Zip:               s.Zip,
		AppointmentAt:     s.AppointmentAt,
		AppointmentNotes:  s.AppointmentNotes,
		IsLaneOrigin:      s.IsLaneOrigin,
		IsLaneDestination: s.IsLaneDestination,
	}
}

// ToAccessorialResponse converts a domain.Accessorial to AccessorialResponse DTO.
func ToAccessorialResponse(a *domain.Accessorial) AccessorialResponse {
	return AccessorialResponse{
		AccessorialID: a.AccessorialID,
		Name:          a.Name,
		CustomerRate:  a.CustomerRate,
		CarrierCost:   a.CarrierCost,
		Quantity:      a.EffectiveQuantity(),
	}
}

// ToShipmentResponse converts a domain.Shipment to ShipmentResponse DTO.
func ToShipmentResponse(s *domain.Shipment) ShipmentResponse {
	stops := make([]StopResponse, len(s.Stops))
	for i := range s.Stops {
		stops[i] = ToStopResponse(&s.Stops[i])
	}
	accessorials := make([]AccessorialResponse, len(s.Accessorials))
	for i := range s.Accessorials {
		accessorials[i] = ToAccessorialResponse(&s.Accessorials[i])
	}
	return ShipmentResponse{
		ShipmentID:          s.ShipmentID,
		ShipmentNumber:      s.ShipmentNumber,
		Status:              s.Status,
		ShipperID:           s.ShipperID,
		CarrierID:           s.CarrierID,
		ModeOfTransport:     s.ModeOfTransport,
		EquipmentType:       s.EquipmentType,
		Stops:               stops,
		Accessorials:        accessorials,
		CustomerRate:        s.CustomerRate,
		CarrierCostTotal:    s.CarrierCostTotal,
		FSCType:             s.FSCType,
		FSCCustomerAmount:   s.FSCCustomerAmount,
		FSCCarrierAmount:    s.FSCCarrierAmount,
		ChassisCustomerCost: s.ChassisCustomerCost,
		ChassisCarrierCost:  s.ChassisCarrierCost,
		TotalCustomerRate:   s.TotalCustomerRate,
		TotalCarrierCost:    s.TotalCarrierCost,
		GrossProfit:         s.GrossProfit,
		Margin:              s.Margin,
		QuoteNotes:          s.QuoteNotes,
		InternalNotes:       s.InternalNotes,
		CreatedAt:           s.CreatedAt,
		CreatedBy:           s.CreatedBy,
		LastUpdatedAt:       s.LastUpdatedAt,
		LastUpdatedBy:       s.LastUpdatedBy,
	}
}

// ToListShipmentsResponse converts a page of domain shipments plus its token.
func ToListShipmentsResponse(shipments []domain.Shipment, nextToken *string) *ListShipmentsResponse {
	res := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		res[i] = ToShipmentResponse(&shipments[i])
	}
	return &ListShipmentsResponse{Shipments: res, NextToken: nextToken}
}
