package repositories

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// ListLaneRatesFilter narrows a lane rate search to a lane.
type ListLaneRatesFilter struct {
	OriginCity       *string
	OriginState      *string
	DestinationCity  *string
	DestinationState *string
	CarrierID        *string
	ModeOfTransport  *string
	EquipmentType    *string
	SourceType       *domain.RateSourceType
	ActiveOnly       bool
}

// LaneRateReader defines read operations for lane rate data.
type LaneRateReader interface {
	// FindLaneRateByID retrieves a lane rate with any manual accessorials.
	FindLaneRateByID(ctx context.Context, laneRateID string) (*domain.LaneRate, error)

	// FindLaneRateBySourceShipmentID retrieves the TMS-sourced lane rate
	// derived from the given shipment, or apperrors.ErrNotFound.
	FindLaneRateBySourceShipmentID(ctx context.Context, shipmentID string) (*domain.LaneRate, error)

	// ListLaneRates retrieves a paginated, filtered list of lane rates using
	// token-based pagination.
	ListLaneRates(ctx context.Context, filter ListLaneRatesFilter, limit int, nextToken *string) ([]domain.LaneRate, *string, error)
}

// LaneRateWriter defines write operations for lane rate data.
type LaneRateWriter interface {
	// UpsertBySourceShipment atomically inserts or updates the TMS-sourced
	// lane rate keyed by SourceShipmentID, relying on the partial unique
	// index on source_shipment_id. Returns the stored row.
	UpsertBySourceShipment(ctx context.Context, laneRate domain.LaneRate) (*domain.LaneRate, error)

	// SaveLaneRate inserts a lane rate (manual entry or import) with its
	// manual accessorials.
	SaveLaneRate(ctx context.Context, laneRate domain.LaneRate) error

	// UpdateLaneRate replaces a lane rate and its manual accessorials.
	UpdateLaneRate(ctx context.Context, laneRate domain.LaneRate) error

	// DeleteLaneRate removes a lane rate by its own ID.
	DeleteLaneRate(ctx context.Context, laneRateID string) error

	// DeleteBySourceShipmentID removes the lane rate derived from the given
	// shipment, if any. Used before deleting the shipment itself so no
	// orphaned back-reference survives.
	DeleteBySourceShipmentID(ctx context.Context, shipmentID string) error
}

// LaneRateRepositoryFacade combines all lane rate repository interfaces.
type LaneRateRepositoryFacade interface {
	LaneRateReader
	LaneRateWriter
}
