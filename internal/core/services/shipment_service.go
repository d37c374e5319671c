package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
	"github.com/lanewise/freight_tms_app/internal/monitoring"
	"github.com/lanewise/freight_tms_app/internal/platform/tasks"
	"github.com/lanewise/freight_tms_app/internal/utils"
	"github.com/lanewise/freight_tms_app/internal/utils/rating"
)

const (
	numberSuffixLength = 8
	numberMaxAttempts  = 5
)

// shipmentService provides shipment and quote operations: creation with
// number generation, financial derivation on every write, and dispatch of
// the lane rate recorder after each successful save.
type shipmentService struct {
	shipmentRepo portsrepo.ShipmentRepositoryFacade
	settingsSvc  portssvc.SettingsSvc
	laneRateSvc  portssvc.LaneRateRecorderSvc
	runner       *tasks.Runner
}

// NewShipmentService creates a new ShipmentService.
func NewShipmentService(shipmentRepo portsrepo.ShipmentRepositoryFacade, settingsSvc portssvc.SettingsSvc, laneRateSvc portssvc.LaneRateRecorderSvc, runner *tasks.Runner) portssvc.ShipmentSvcFacade {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		settingsSvc:  settingsSvc,
		laneRateSvc:  laneRateSvc,
		runner:       runner,
	}
}

var _ portssvc.ShipmentSvcFacade = (*shipmentService)(nil)

// resolveNumberPrefix picks the shipment number prefix. Quotes use the
// configured quote prefix; everything else derives from the mode of
// transport. A settings failure falls back to the default and never blocks
// shipment creation.
func (s *shipmentService) resolveNumberPrefix(ctx context.Context, status domain.ShipmentStatus, modeOfTransport string) string {
	if status.IsQuote() {
		settings, err := s.settingsSvc.GetQuoteFormSettings(ctx)
		if err != nil || settings.QuoteNumberPrefix == "" {
			middleware.GetLoggerFromCtx(ctx).Warn("Falling back to default quote number prefix", "error", err)
			return domain.DefaultQuoteNumberPrefix
		}
		return settings.QuoteNumberPrefix
	}

	mode := strings.ReplaceAll(modeOfTransport, "-", "")
	if mode == "" {
		return domain.GeneralNumberPrefix
	}
	if len(mode) > 2 {
		mode = mode[:2]
	}
	return strings.ToUpper(mode)
}

// generateShipmentNumber produces a unique number: prefix plus an 8-character
// alphanumeric suffix. After five collisions it degrades to a
// timestamp-based emergency format, logged at error level.
func (s *shipmentService) generateShipmentNumber(ctx context.Context, prefix string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < numberMaxAttempts; attempt++ {
		suffix, err := utils.GenerateReferenceSuffix(numberSuffixLength)
		if err != nil {
			return "", apperrors.NewAppError(500, "failed to generate shipment number suffix", err)
		}
		candidate := prefix + suffix

		exists, err := s.shipmentRepo.ShipmentNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		monitoring.NumberCollisions.Inc()
		logger.Warn("Shipment number collision, retrying", slog.String("candidate", candidate), slog.Int("attempt", attempt+1))
	}

	// The 36^8 suffix space should never exhaust five attempts; reaching
	// this point means something is wrong and needs surfacing.
	suffix, err := utils.GenerateReferenceSuffix(4)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to generate emergency shipment number suffix", err)
	}
	emergency := fmt.Sprintf("%s%d%s", prefix, time.Now().UTC().UnixMilli(), suffix)
	logger.Error("Shipment number generation exhausted retries, using emergency format", slog.String("number", emergency))
	return emergency, nil
}

// dispatchLaneRateRecorder hands a saved shipment snapshot to the recorder on
// a background goroutine. The shipment write path never waits on or learns
// about the outcome.
func (s *shipmentService) dispatchLaneRateRecorder(ctx context.Context, shipment domain.Shipment, actorUserID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.runner.Submit("lane-rate-record", func(taskCtx context.Context) {
		s.laneRateSvc.RecordFromShipment(middleware.WithLogger(taskCtx, logger), shipment, actorUserID)
	})
}

func stopsFromRequests(reqs []dto.StopRequest) []domain.Stop {
	stops := make([]domain.Stop, len(reqs))
	for i, sr := range reqs {
		stops[i] = domain.Stop{
			StopID:            uuid.NewString(),
			Sequence:          i,
			Type:              sr.Type,
			LocationName:      sr.LocationName,
			Address:           sr.Address,
			City:              sr.City,
			State:             sr.State,
			Zip:               sr.Zip,
			AppointmentAt:     sr.AppointmentAt,
			AppointmentNotes:  sr.AppointmentNotes,
			IsLaneOrigin:      sr.IsLaneOrigin,
			IsLaneDestination: sr.IsLaneDestination,
		}
	}
	return stops
}

func accessorialsFromRequests(reqs []dto.AccessorialRequest) []domain.Accessorial {
	accessorials := make([]domain.Accessorial, len(reqs))
	for i, ar := range reqs {
		accessorials[i] = domain.Accessorial{
			AccessorialID: uuid.NewString(),
			Name:          ar.Name,
			CustomerRate:  ar.CustomerRate,
			CarrierCost:   ar.CarrierCost,
			Quantity:      ar.Quantity,
		}
	}
	return accessorials
}

// applyDerivedTotals recomputes the four derived financial fields from the
// shipment's raw rate inputs.
func applyDerivedTotals(shipment *domain.Shipment) {
	totals := rating.CalculateTotals(rating.InputsFromShipment(shipment))
	shipment.TotalCustomerRate = totals.TotalCustomerRate
	shipment.TotalCarrierCost = totals.TotalCarrierCost
	shipment.GrossProfit = totals.GrossProfit
	shipment.Margin = totals.Margin
}

// CreateShipment persists a new shipment or quote: number generation, then
// financial derivation, then persistence, then detached lane rate recording.
func (s *shipmentService) CreateShipment(ctx context.Context, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prefix := s.resolveNumberPrefix(ctx, req.Status, req.ModeOfTransport)
	shipmentNumber, err := s.generateShipmentNumber(ctx, prefix)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shipment := domain.Shipment{
		ShipmentID:      uuid.NewString(),
		ShipmentNumber:  shipmentNumber,
		Status:          req.Status,
		ShipperID:       req.ShipperID,
		CarrierID:       req.CarrierID,
		ModeOfTransport: req.ModeOfTransport,
		EquipmentType:   req.EquipmentType,

		Stops:        stopsFromRequests(req.Stops),
		Accessorials: accessorialsFromRequests(req.Accessorials),

		CustomerRate:        req.CustomerRate,
		CarrierCostTotal:    req.CarrierCostTotal,
		FSCType:             req.FSCType,
		FSCCustomerAmount:   req.FSCCustomerAmount,
		FSCCarrierAmount:    req.FSCCarrierAmount,
		ChassisCustomerCost: req.ChassisCustomerCost,
		ChassisCarrierCost:  req.ChassisCarrierCost,

		QuoteNotes:    req.QuoteNotes,
		InternalNotes: req.InternalNotes,

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	applyDerivedTotals(&shipment)

	if err := s.shipmentRepo.SaveShipment(ctx, shipment); err != nil {
		logger.Error("Failed to save shipment", slog.String("shipment_number", shipment.ShipmentNumber), slog.String("error", err.Error()))
		return nil, err
	}

	monitoring.ShipmentsCreated.WithLabelValues(string(shipment.Status)).Inc()
	logger.Info("Shipment created", slog.String("shipment_id", shipment.ShipmentID), slog.String("shipment_number", shipment.ShipmentNumber))

	s.dispatchLaneRateRecorder(ctx, shipment, creatorUserID)

	return &shipment, nil
}

// UpdateShipment applies a partial update, re-derives the financial totals,
// persists, and re-dispatches the lane rate recorder. The shipment number is
// never regenerated or overwritten.
func (s *shipmentService) UpdateShipment(ctx context.Context, shipmentID string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment := *existing

	if req.Status != nil {
		shipment.Status = *req.Status
	}
	if req.ShipperID != nil {
		shipment.ShipperID = req.ShipperID
	}
	if req.CarrierID != nil {
		shipment.CarrierID = req.CarrierID
	}
	if req.ModeOfTransport != nil {
		shipment.ModeOfTransport = *req.ModeOfTransport
	}
	if req.EquipmentType != nil {
		shipment.EquipmentType = *req.EquipmentType
	}
	if req.Stops != nil {
		shipment.Stops = stopsFromRequests(req.Stops)
	}
	if req.Accessorials != nil {
		shipment.Accessorials = accessorialsFromRequests(req.Accessorials)
	}
	if req.CustomerRate != nil {
		shipment.CustomerRate = *req.CustomerRate
	}
	if req.CarrierCostTotal != nil {
		shipment.CarrierCostTotal = *req.CarrierCostTotal
	}
	if req.FSCType != nil {
		shipment.FSCType = *req.FSCType
	}
	if req.FSCCustomerAmount != nil {
		shipment.FSCCustomerAmount = *req.FSCCustomerAmount
	}
	if req.FSCCarrierAmount != nil {
		shipment.FSCCarrierAmount = *req.FSCCarrierAmount
	}
	if req.ChassisCustomerCost != nil {
		shipment.ChassisCustomerCost = *req.ChassisCustomerCost
	}
	if req.ChassisCarrierCost != nil {
		shipment.ChassisCarrierCost = *req.ChassisCarrierCost
	}
	if req.QuoteNotes != nil {
		shipment.QuoteNotes = *req.QuoteNotes
	}
	if req.InternalNotes != nil {
		shipment.InternalNotes = *req.InternalNotes
	}

	shipment.LastUpdatedAt = time.Now().UTC()
	shipment.LastUpdatedBy = requestingUserID

	applyDerivedTotals(&shipment)

	if err := s.shipmentRepo.UpdateShipment(ctx, shipment); err != nil {
		logger.Error("Failed to update shipment", slog.String("shipment_id", shipmentID), slog.String("error", err.Error()))
		return nil, err
	}

	monitoring.ShipmentsUpdated.Inc()
	logger.Info("Shipment updated", slog.String("shipment_id", shipment.ShipmentID))

	s.dispatchLaneRateRecorder(ctx, shipment, requestingUserID)

	return &shipment, nil
}

// DeleteShipment removes a shipment. The lane rate derived from it is
// deleted first so no orphaned back-reference survives.
func (s *shipmentService) DeleteShipment(ctx context.Context, shipmentID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.laneRateSvc.DeleteForShipment(ctx, shipmentID); err != nil {
		logger.Error("Failed to delete lane rate for shipment", slog.String("shipment_id", shipmentID), slog.String("error", err.Error()))
		return err
	}

	if err := s.shipmentRepo.DeleteShipment(ctx, shipmentID); err != nil {
		return err
	}

	logger.Info("Shipment deleted", slog.String("shipment_id", shipmentID), slog.String("user_id", requestingUserID))
	return nil
}

// GetShipmentByID retrieves a shipment with its stops and accessorials.
func (s *shipmentService) GetShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	return s.shipmentRepo.FindShipmentByID(ctx, shipmentID)
}

// ListShipments retrieves a paginated, filtered list of shipments.
func (s *shipmentService) ListShipments(ctx context.Context, params dto.ListShipmentsParams) (*dto.ListShipmentsResponse, error) {
	filter := portsrepo.ListShipmentsFilter{
		ShipperID:  params.ShipperID,
		CarrierID:  params.CarrierID,
		QuotesOnly: params.QuotesOnly,
	}
	if params.Status != nil {
		status := domain.ShipmentStatus(*params.Status)
		filter.Status = &status
	}

	shipments, nextToken, err := s.shipmentRepo.ListShipments(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list shipments", slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListShipmentsResponse(shipments, nextToken), nil
}
