package repositories

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// ShipperRepository defines persistence operations for shippers.
type ShipperRepository interface {
	FindShipperByID(ctx context.Context, shipperID string) (*domain.Shipper, error)
	ListShippers(ctx context.Context, limit int, nextToken *string) ([]domain.Shipper, *string, error)
	SaveShipper(ctx context.Context, shipper domain.Shipper) error
	UpdateShipper(ctx context.Context, shipper domain.Shipper) error
	DeleteShipper(ctx context.Context, shipperID string) error
}

// CarrierRepository defines persistence operations for carriers.
type CarrierRepository interface {
	FindCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error)
	ListCarriers(ctx context.Context, limit int, nextToken *string) ([]domain.Carrier, *string, error)
	SaveCarrier(ctx context.Context, carrier domain.Carrier) error
	UpdateCarrier(ctx context.Context, carrier domain.Carrier) error
	DeleteCarrier(ctx context.Context, carrierID string) error
}
