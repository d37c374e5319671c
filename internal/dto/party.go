package dto

import (
	"time"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// CreateShipperRequest defines the data needed to create a shipper.
type CreateShipperRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// UpdateShipperRequest defines the data allowed for updating a shipper.
type UpdateShipperRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"isActive"`
}

// ShipperResponse defines the data returned for a shipper.
type ShipperResponse struct {
	ShipperID     string    `json:"shipperID"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Zip           string    `json:"zip,omitempty"`
	ContactName   string    `json:"contactName,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListShippersResponse wraps a page of shippers with the pagination token.
type ListShippersResponse struct {
	Shippers  []ShipperResponse `json:"shippers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// CreateCarrierRequest defines the data needed to create a carrier.
type CreateCarrierRequest struct {
	Name           string   `json:"name" binding:"required"`
	MCNumber       string   `json:"mcNumber"`
	DOTNumber      string   `json:"dotNumber"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	EquipmentTypes []string `json:"equipmentTypes"`
	ContactName    string   `json:"contactName"`
	ContactEmail   string   `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone   string   `json:"contactPhone"`
	Notes          string   `json:"notes"`
}

// UpdateCarrierRequest defines the data allowed for updating a carrier.
type UpdateCarrierRequest struct {
	Name           *string  `json:"name"`
	MCNumber       *string  `json:"mcNumber"`
	DOTNumber      *string  `json:"dotNumber"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	EquipmentTypes []string `json:"equipmentTypes"`
	ContactName    *string  `json:"contactName"`
	ContactEmail   *string  `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone   *string  `json:"contactPhone"`
	Notes          *string  `json:"notes"`
	IsActive       *bool    `json:"isActive"`
}

// CarrierResponse defines the data returned for a carrier.
type CarrierResponse struct {
	CarrierID      string    `json:"carrierID"`
	Name           string    `json:"name"`
	MCNumber       string    `json:"mcNumber,omitempty"`
	DOTNumber      string    `json:"dotNumber,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	EquipmentTypes []string  `json:"equipmentTypes,omitempty"`
	ContactName    string    `json:"contactName,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ListCarriersResponse wraps a page of carriers with the pagination token.
type ListCarriersResponse struct {
	Carriers  []CarrierResponse `json:"carriers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToShipperResponse converts a domain.Shipper to ShipperResponse DTO.
func ToShipperResponse(s *domain.Shipper) ShipperResponse {
	return ShipperResponse{
		ShipperID:     s.ShipperID,
		Name:          s.Name,
		Address:       s.Address,
		City:          s.City,
		State:         s.State,
		Zip:           s.Zip,
		ContactName:   s.ContactName,
		ContactEmail:  s.ContactEmail,
		ContactPhone:  s.ContactPhone,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToListShippersResponse converts a page of domain shippers plus its token.
func ToListShippersResponse(shippers []domain.Shipper, nextToken *string) *ListShippersResponse {
	res := make([]ShipperResponse, len(shippers))
	for i := range shippers {
		res[i] = ToShipperResponse(&shippers[i])
	}
	return &ListShippersResponse{Shippers: res, NextToken: nextToken}
}

// ToCarrierResponse converts a domain.Carrier to CarrierResponse DTO.
func ToCarrierResponse(c *domain.Carrier) CarrierResponse {
	return CarrierResponse{
		CarrierID:      c.CarrierID,
		Name:           c.Name,
		MCNumber:       c.MCNumber,
		DOTNumber:      c.DOTNumber,
		City:           c.City,
		State:          c.State,
		EquipmentTypes: c.EquipmentTypes,
		ContactName:    c.ContactName,
		ContactEmail:   c.ContactEmail,
		ContactPhone:   c.ContactPhone,
		Notes:          c.Notes,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
		LastUpdatedAt:  c.LastUpdatedAt,
		LastUpdatedBy:  c.LastUpdatedBy,
	}
}

// ToListCarriersResponse converts a page of domain carriers plus its token.
func ToListCarriersResponse(carriers []domain.Carrier, nextToken *string) *ListCarriersResponse {
	res := make([]CarrierResponse, len(carriers))
	for i := range carriers {
		res[i] = ToCarrierResponse(&carriers[i])
	}
	return &ListCarriersResponse{Carriers: res, NextToken: nextToken}
}
