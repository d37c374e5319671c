package services

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/dto"
)

// LaneRateReaderSvc defines read operations for lane rate data
type LaneRateReaderSvc interface {
	// GetLaneRateByID retrieves a specific lane rate.
	GetLaneRateByID(ctx context.Context, laneRateID string) (*domain.LaneRate, error)

	// ListLaneRates retrieves a paginated, filtered list of lane rates.
	ListLaneRates(ctx context.Context, params dto.ListLaneRatesParams) (*dto.ListLaneRatesResponse, error)
}

// LaneRateWriterSvc defines write operations for manually managed lane rates
type LaneRateWriterSvc interface {
	// CreateLaneRate persists a manually entered lane rate.
	CreateLaneRate(ctx context.Context, req dto.CreateLaneRateRequest, creatorUserID string) (*domain.LaneRate, error)

	// UpdateLaneRate updates a lane rate's details.
	UpdateLaneRate(ctx context.Context, laneRateID string, req dto.UpdateLaneRateRequest, requestingUserID string) (*domain.LaneRate, error)

	// DeleteLaneRate removes a lane rate.
	DeleteLaneRate(ctx context.Context, laneRateID string, requestingUserID string) error
}

// LaneRateRecorderSvc derives lane rates from shipments.
type LaneRateRecorderSvc interface {
	// RecordFromShipment derives a lane rate from an eligible shipment and
	// upserts it keyed by the shipment's ID. Ineligible shipments are
	// skipped without error. Persistence failures are logged, never
	// propagated to the caller's save path.
	RecordFromShipment(ctx context.Context, shipment domain.Shipment, actorUserID string)

	// DeleteForShipment removes the lane rate derived from a shipment, if any.
	DeleteForShipment(ctx context.Context, shipmentID string) error
}

// LaneRateSvcFacade combines all lane rate service interfaces
type LaneRateSvcFacade interface {
	LaneRateReaderSvc
	LaneRateWriterSvc
	LaneRateRecorderSvc
}
