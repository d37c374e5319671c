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
)

type carrierService struct {
	carrierRepo portsrepo.CarrierRepository
}

// NewCarrierService creates a new CarrierService.
func NewCarrierService(carrierRepo portsrepo.CarrierRepository) portssvc.CarrierSvc {
	return &carrierService{carrierRepo: carrierRepo}
}

var _ portssvc.CarrierSvc = (*carrierService)(nil)

func (s *carrierService) GetCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error) {
	return s.carrierRepo.FindCarrierByID(ctx, carrierID)
}

func (s *carrierService) ListCarriers(ctx context.Context, params dto.ListParams) (*dto.ListCarriersResponse, error) {
	carriers, nextToken, err := s.carrierRepo.ListCarriers(ctx, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list carriers", slog.String("error", err.Error()))
		return nil, err
	}
	return dto.ToListCarriersResponse(carriers, nextToken), nil
}

func (s *carrierService) CreateCarrier(ctx context.Context, req dto.CreateCarrierRequest, creatorUserID string) (*domain.Carrier, error) {
	now := time.Now().UTC()
	carrier := domain.Carrier{
		CarrierID:      uuid.NewString(),
		Name:           req.Name,
		MCNumber:       req.MCNumber,
		DOTNumber:      req.DOTNumber,
		City:           req.City,
		State:          req.State,
		EquipmentTypes: req.EquipmentTypes,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Notes:          req.Notes,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.carrierRepo.SaveCarrier(ctx, carrier); err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (s *carrierService) UpdateCarrier(ctx context.Context, carrierID string, req dto.UpdateCarrierRequest, requestingUserID string) (*domain.Carrier, error) {
	existing, err := s.carrierRepo.FindCarrierByID(ctx, carrierID)
	if err != nil {
		return nil, err
	}
	carrier := *existing

	if req.Name != nil {
		carrier.Name = *req.Name
	}
	if req.MCNumber != nil {
		carrier.MCNumber = *req.MCNumber
	}
	if req.DOTNumber != nil {
		carrier.DOTNumber = *req.DOTNumber
	}
	if req.City != nil {
		carrier.City = *req.City
	}
	if req.State != nil {
		carrier.State = *req.State
	}
	if req.EquipmentTypes != nil {
		carrier.EquipmentTypes = req.EquipmentTypes
	}
	if req.ContactName != nil {
		carrier.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		carrier.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		carrier.ContactPhone = *req.ContactPhone
	}
	if req.Notes != nil {
		carrier.Notes = *req.Notes
	}
	if req.IsActive != nil {
		carrier.IsActive = *req.IsActive
	}

	carrier.LastUpdatedAt = time.Now().UTC()
	carrier.LastUpdatedBy = requestingUserID

	if err := s.carrierRepo.UpdateCarrier(ctx, carrier); err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (s *carrierService) DeleteCarrier(ctx context.Context, carrierID string, requestingUserID string) error {
	if err := s.carrierRepo.DeleteCarrier(ctx, carrierID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Carrier deleted", slog.String("carrier_id", carrierID), slog.String("user_id", requestingUserID))
	return nil
}
