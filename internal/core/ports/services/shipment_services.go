package services

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/dto"
)

// ShipmentReaderSvc defines read operations for shipment data
type ShipmentReaderSvc interface {
	// GetShipmentByID retrieves a specific shipment with its stops and accessorials.
	GetShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error)

	// ListShipments retrieves a paginated, filtered list of shipments.
	ListShipments(ctx context.Context, params dto.ListShipmentsParams) (*dto.ListShipmentsResponse, error)
}

// ShipmentWriterSvc defines write operations for shipment data
type ShipmentWriterSvc interface {
	// CreateShipment persists a new shipment (or quote), generating its
	// shipment number and deriving all financial totals.
	CreateShipment(ctx context.Context, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, error)

	// UpdateShipment updates a shipment's details, re-deriving financial
	// totals. The shipment number is never changed.
	UpdateShipment(ctx context.Context, shipmentID string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, error)

	// DeleteShipment removes a shipment together with any lane rate that was
	// derived from it.
	DeleteShipment(ctx context.Context, shipmentID string, requestingUserID string) error
}

// ShipmentSvcFacade combines all shipment-related service interfaces
type ShipmentSvcFacade interface {
	ShipmentReaderSvc
	ShipmentWriterSvc
}
