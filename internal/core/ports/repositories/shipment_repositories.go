package repositories

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// ListShipmentsFilter narrows a shipment listing.
type ListShipmentsFilter struct {
	Status     *domain.ShipmentStatus
	ShipperID  *string
	CarrierID  *string
	QuotesOnly bool
}

// ShipmentReader defines read operations for shipment data.
type ShipmentReader interface {
	// FindShipmentByID retrieves a shipment with its stops and accessorials.
	FindShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error)

	// ShipmentNumberExists reports whether a shipment number is already taken.
	ShipmentNumberExists(ctx context.Context, shipmentNumber string) (bool, error)

	// ListShipments retrieves a paginated list of shipment headers using
	// token-based pagination. Returns the shipments, a next-page token, and an error.
	ListShipments(ctx context.Context, filter ListShipmentsFilter, limit int, nextToken *string) ([]domain.Shipment, *string, error)
}

// ShipmentWriter defines write operations for shipment data.
type ShipmentWriter interface {
	// SaveShipment inserts a shipment header with its stops and accessorials
	// within a single database transaction.
	SaveShipment(ctx context.Context, shipment domain.Shipment) error

	// UpdateShipment replaces a shipment header and its stops/accessorials
	// within a single database transaction. The shipment number is never touched.
	UpdateShipment(ctx context.Context, shipment domain.Shipment) error

	// DeleteShipment removes a shipment and its child rows.
	DeleteShipment(ctx context.Context, shipmentID string) error
}

// ShipmentRepositoryFacade combines all shipment repository interfaces.
type ShipmentRepositoryFacade interface {
	ShipmentReader
	ShipmentWriter
}

// ShipmentRepositoryWithTx extends the facade with transaction capabilities.
type ShipmentRepositoryWithTx interface {
	ShipmentRepositoryFacade
	TransactionManager
}
