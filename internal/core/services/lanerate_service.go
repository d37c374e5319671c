package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
	"github.com/lanewise/freight_tms_app/internal/monitoring"
	"github.com/lanewise/freight_tms_app/internal/utils/rating"
)

// laneRateService provides lane rate CRUD plus the recorder that derives
// lane rates from saved shipments.
type laneRateService struct {
	laneRateRepo portsrepo.LaneRateRepositoryFacade
}

// NewLaneRateService creates a new LaneRateService.
func NewLaneRateService(laneRateRepo portsrepo.LaneRateRepositoryFacade) portssvc.LaneRateSvcFacade {
	return &laneRateService{laneRateRepo: laneRateRepo}
}

var _ portssvc.LaneRateSvcFacade = (*laneRateService)(nil)

// recordableStatuses are the lifecycle states representing a settled market
// rate for the lane. Cancelled, on-hold, problem and in-transit shipments
// never produce or update a lane rate.
var recordableStatuses = map[domain.ShipmentStatus]bool{
	domain.StatusQuote:     true,
	domain.StatusBooked:    true,
	domain.StatusDelivered: true,
	domain.StatusInvoiced:  true,
	domain.StatusPaid:      true,
}

// eligibleForRecording applies the recorder's gate: a recordable status, an
// assigned carrier, and a resolvable origin and destination with city and
// state. Returns the resolved endpoints when eligible.
func eligibleForRecording(shipment *domain.Shipment) (origin, destination *domain.Stop, ok bool) {
	if !recordableStatuses[shipment.Status] {
		return nil, nil, false
	}
	if shipment.CarrierID == nil || *shipment.CarrierID == "" {
		return nil, nil, false
	}
	origin = shipment.Origin()
	destination = shipment.Destination()
	if origin == nil || destination == nil {
		return nil, nil, false
	}
	if origin.City == "" || origin.State == "" || destination.City == "" || destination.State == "" {
		return nil, nil, false
	}
	return origin, destination, true
}

// deriveLaneRate maps an eligible shipment onto a lane rate record. The line
// haul figures are the raw inputs, not the grand totals; accessorial sums are
// re-derived so the lane rate carries the accessorial component alone.
func deriveLaneRate(shipment *domain.Shipment, origin, destination *domain.Stop, actorUserID string) domain.LaneRate {
	accCustomer, accCarrier := rating.AccessorialTotals(shipment.Accessorials)

	notes := shipment.InternalNotes
	if shipment.Status == domain.StatusQuote {
		notes = shipment.QuoteNotes
	}

	now := time.Now().UTC()
	sourceShipmentID := shipment.ShipmentID

	return domain.LaneRate{
		LaneRateID: uuid.NewString(),

		OriginCity:       origin.City,
		OriginState:      origin.State,
		OriginZip:        origin.Zip,
		DestinationCity:  destination.City,
		DestinationState: destination.State,
		DestinationZip:   destination.Zip,

		CarrierID:       shipment.CarrierID,
		ModeOfTransport: shipment.ModeOfTransport,
		EquipmentType:   shipment.EquipmentType,

		LineHaulRate:         shipment.CustomerRate,
		LineHaulCost:         shipment.CarrierCostTotal,
		FSCPercentage:        rating.NormalizeFSCPercentage(shipment.FSCType, shipment.FSCCustomerAmount, shipment.CustomerRate),
		CarrierFSCPercentage: rating.NormalizeFSCPercentage(shipment.FSCType, shipment.FSCCarrierAmount, shipment.CarrierCostTotal),

		ChassisCustomerCost:      shipment.ChassisCustomerCost,
		ChassisCarrierCost:       shipment.ChassisCarrierCost,
		TotalAccessorialCustomer: accCustomer,
		TotalAccessorialCarrier:  accCarrier,

		SourceType:                domain.SourceTMSShipment,
		SourceShipmentID:          &sourceShipmentID,
		SourceQuoteShipmentNumber: shipment.ShipmentNumber,

		// The shipment's original creation time, not the recording time, so
		// repeated edits keep the historical rate timing.
		RateDate: shipment.CreatedAt,
		Notes:    notes,
		IsActive: true,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     shipment.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
}

// RecordFromShipment derives a lane rate from a saved shipment and upserts
// it keyed by the shipment's ID. Ineligible shipments are skipped with a
// debug log. Every failure is swallowed and logged; by the time this runs
// the shipment write has already succeeded, and nothing here may undo that.
func (s *laneRateService) RecordFromShipment(ctx context.Context, shipment domain.Shipment, actorUserID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	origin, destination, ok := eligibleForRecording(&shipment)
	if !ok {
		monitoring.LaneRatesRecorded.WithLabelValues(monitoring.OutcomeSkipped).Inc()
		logger.Debug("Shipment not eligible for lane rate recording",
			slog.String("shipment_number", shipment.ShipmentNumber),
			slog.String("status", string(shipment.Status)),
		)
		return
	}

	laneRate := deriveLaneRate(&shipment, origin, destination, actorUserID)

	saved, err := s.laneRateRepo.UpsertBySourceShipment(ctx, laneRate)
	if err != nil {
		monitoring.LaneRatesRecorded.WithLabelValues(monitoring.OutcomeFailed).Inc()
		logger.Error("Failed to record lane rate",
			slog.String("shipment_number", shipment.ShipmentNumber),
			slog.String("error", err.Error()),
		)
		return
	}

	monitoring.LaneRatesRecorded.WithLabelValues(monitoring.OutcomeRecorded).Inc()
	logger.Info("Lane rate recorded",
		slog.String("lane_rate_id", saved.LaneRateID),
		slog.String("shipment_number", shipment.ShipmentNumber),
	)
}

// DeleteForShipment removes the lane rate derived from a shipment, if any.
func (s *laneRateService) DeleteForShipment(ctx context.Context, shipmentID string) error {
	return s.laneRateRepo.DeleteBySourceShipmentID(ctx, shipmentID)
}

// GetLaneRateByID retrieves a specific lane rate.
func (s *laneRateService) GetLaneRateByID(ctx context.Context, laneRateID string) (*domain.LaneRate, error) {
	return s.laneRateRepo.FindLaneRateByID(ctx, laneRateID)
}

// ListLaneRates retrieves a paginated, filtered list of lane rates.
func (s *laneRateService) ListLaneRates(ctx context.Context, params dto.ListLaneRatesParams) (*dto.ListLaneRatesResponse, error) {
	filter := portsrepo.ListLaneRatesFilter{
		OriginCity:       params.OriginCity,
		OriginState:      params.OriginState,
		DestinationCity:  params.DestinationCity,
		DestinationState: params.DestinationState,
		CarrierID:        params.CarrierID,
		ModeOfTransport:  params.ModeOfTransport,
		EquipmentType:    params.EquipmentType,
		ActiveOnly:       params.ActiveOnly,
	}
	if params.SourceType != nil {
		sourceType := domain.RateSourceType(*params.SourceType)
		filter.SourceType = &sourceType
	}

	laneRates, nextToken, err := s.laneRateRepo.ListLaneRates(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list lane rates", slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListLaneRatesResponse(laneRates, nextToken), nil
}

func manualAccessorialsFromRequests(reqs []dto.ManualAccessorialRequest) []domain.ManualAccessorial {
	accessorials := make([]domain.ManualAccessorial, len(reqs))
	for i, ar := range reqs {
		accessorials[i] = domain.ManualAccessorial{
			ManualAccessorialID: uuid.NewString(),
			Name:                ar.Name,
			Cost:                ar.Cost,
			Notes:               ar.Notes,
		}
	}
	return accessorials
}

// CreateLaneRate persists a manually entered lane rate. Manual rows are owned
// by users; the recorder never touches them.
func (s *laneRateService) CreateLaneRate(ctx context.Context, req dto.CreateLaneRateRequest, creatorUserID string) (*domain.LaneRate, error) {
	now := time.Now().UTC()
	rateDate := req.RateDate
	if rateDate.IsZero() {
		rateDate = now
	}

	laneRate := domain.LaneRate{
		LaneRateID: uuid.NewString(),

		OriginCity:       req.OriginCity,
		OriginState:      req.OriginState,
		OriginZip:        req.OriginZip,
		DestinationCity:  req.DestinationCity,
		DestinationState: req.DestinationState,
		DestinationZip:   req.DestinationZip,

		CarrierID:       req.CarrierID,
		ModeOfTransport: req.ModeOfTransport,
		EquipmentType:   req.EquipmentType,

		LineHaulRate:         req.LineHaulRate,
		LineHaulCost:         req.LineHaulCost,
		FSCPercentage:        req.FSCPercentage,
		CarrierFSCPercentage: req.CarrierFSCPercentage,
		ChassisCustomerCost:  req.ChassisCustomerCost,
		ChassisCarrierCost:   req.ChassisCarrierCost,

		SourceType: domain.SourceManualEntry,

		RateDate: rateDate,
		Notes:    req.Notes,
		IsActive: true,

		ManualAccessorials: manualAccessorialsFromRequests(req.ManualAccessorials),

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.laneRateRepo.SaveLaneRate(ctx, laneRate); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save lane rate", slog.String("error", err.Error()))
		return nil, err
	}
	return &laneRate, nil
}

// UpdateLaneRate applies a partial update to a lane rate.
func (s *laneRateService) UpdateLaneRate(ctx context.Context, laneRateID string, req dto.UpdateLaneRateRequest, requestingUserID string) (*domain.LaneRate, error) {
	existing, err := s.laneRateRepo.FindLaneRateByID(ctx, laneRateID)
	if err != nil {
		return nil, err
	}
	laneRate := *existing

	if req.OriginCity != nil {
		laneRate.OriginCity = *req.OriginCity
	}
	if req.OriginState != nil {
		laneRate.OriginState = *req.OriginState
	}
	if req.OriginZip != nil {
		laneRate.OriginZip = *req.OriginZip
	}
	if req.DestinationCity != nil {
		laneRate.DestinationCity = *req.DestinationCity
	}
	if req.DestinationState != nil {
		laneRate.DestinationState = *req.DestinationState
	}
	if req.DestinationZip != nil {
		laneRate.DestinationZip = *req.DestinationZip
	}
	if req.CarrierID != nil {
		laneRate.CarrierID = req.CarrierID
	}
	if req.ModeOfTransport != nil {
		laneRate.ModeOfTransport = *req.ModeOfTransport
	}
	if req.EquipmentType != nil {
		laneRate.EquipmentType = *req.EquipmentType
	}
	if req.LineHaulRate != nil {
		laneRate.LineHaulRate = *req.LineHaulRate
	}
	if req.LineHaulCost != nil {
		laneRate.LineHaulCost = *req.LineHaulCost
	}
	if req.FSCPercentage != nil {
		laneRate.FSCPercentage = req.FSCPercentage
	}
	if req.CarrierFSCPercentage != nil {
		laneRate.CarrierFSCPercentage = req.CarrierFSCPercentage
	}
	if req.ChassisCustomerCost != nil {
		laneRate.ChassisCustomerCost = *req.ChassisCustomerCost
	}
	if req.ChassisCarrierCost != nil {
		laneRate.ChassisCarrierCost = *req.ChassisCarrierCost
	}
	if req.RateDate != nil {
		laneRate.RateDate = *req.RateDate
	}
	if req.Notes != nil {
		laneRate.Notes = *req.Notes
	}
	if req.IsActive != nil {
		laneRate.IsActive = *req.IsActive
	}
	if req.ManualAccessorials != nil {
		laneRate.ManualAccessorials = manualAccessorialsFromRequests(req.ManualAccessorials)
	}

	laneRate.LastUpdatedAt = time.Now().UTC()
	laneRate.LastUpdatedBy = requestingUserID

	if err := s.laneRateRepo.UpdateLaneRate(ctx, laneRate); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update lane rate", slog.String("lane_rate_id", laneRateID), slog.String("error", err.Error()))
		return nil, err
	}
	return &laneRate, nil
}

// DeleteLaneRate removes a lane rate by its own ID.
func (s *laneRateService) DeleteLaneRate(ctx context.Context, laneRateID string, requestingUserID string) error {
	if err := s.laneRateRepo.DeleteLaneRate(ctx, laneRateID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Lane rate deleted", slog.String("lane_rate_id", laneRateID), slog.String("user_id", requestingUserID))
	return nil
}
