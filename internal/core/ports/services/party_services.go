package services

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/dto"
)

// ShipperSvc defines operations for managing shippers.
type ShipperSvc interface {
	GetShipperByID(ctx context.Context, shipperID string) (*domain.Shipper, error)
	ListShippers(ctx context.Context, params dto.ListParams) (*dto.ListShippersResponse, error)
	CreateShipper(ctx context.Context, req dto.CreateShipperRequest, creatorUserID string) (*domain.Shipper, error)
	UpdateShipper(ctx context.Context, shipperID string, req dto.UpdateShipperRequest, requestingUserID string) (*domain.Shipper, error)
	DeleteShipper(ctx context.Context, shipperID string, requestingUserID string) error
}

// CarrierSvc defines operations for managing carriers.
type CarrierSvc interface {
	GetCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error)
	ListCarriers(ctx context.Context, params dto.ListParams) (*dto.ListCarriersResponse, error)
	CreateCarrier(ctx context.Context, req dto.CreateCarrierRequest, creatorUserID string) (*domain.Carrier, error)
	UpdateCarrier(ctx context.Context, carrierID string, req dto.UpdateCarrierRequest, requestingUserID string) (*domain.Carrier, error)
	DeleteCarrier(ctx context.Context, carrierID string, requestingUserID string) error
}
