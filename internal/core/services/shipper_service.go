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

type shipperService struct {
	shipperRepo portsrepo.ShipperRepository
}

// NewShipperService creates a new ShipperService.
func NewShipperService(shipperRepo portsrepo.ShipperRepository) portssvc.ShipperSvc {
	return &shipperService{shipperRepo: shipperRepo}
}

var _ portssvc.ShipperSvc = (*shipperService)(nil)

func (s *shipperService) GetShipperByID(ctx context.Context, shipperID string) (*domain.Shipper, error) {
	return s.shipperRepo.FindShipperByID(ctx, shipperID)
}

func (s *shipperService) ListShippers(ctx context.Context, params dto.ListParams) (*dto.ListShippersResponse, error) {
	shippers, nextToken, err := s.shipperRepo.ListShippers(ctx, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list shippers", slog.String("error", err.Error()))
		return nil, err
	}
	return dto.ToListShippersResponse(shippers, nextToken), nil
}

func (s *shipperService) CreateShipper(ctx context.Context, req dto.CreateShipperRequest, creatorUserID string) (*domain.Shipper, error) {
	now := time.Now().UTC()
	shipper := domain.Shipper{
		ShipperID:    uuid.NewString(),
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.shipperRepo.SaveShipper(ctx, shipper); err != nil {
		return nil, err
	}
	return &shipper, nil
}

func (s *shipperService) UpdateShipper(ctx context.Context, shipperID string, req dto.UpdateShipperRequest, requestingUserID string) (*domain.Shipper, error) {
	existing, err := s.shipperRepo.FindShipperByID(ctx, shipperID)
	if err != nil {
		return nil, err
	}
	shipper := *existing

	if req.Name != nil {
		shipper.Name = *req.Name
	}
	if req.Address != nil {
		shipper.Address = *req.Address
	}
	if req.City != nil {
		shipper.City = *req.City
	}
	if req.State != nil {
		shipper.State = *req.State
	}
	if req.Zip != nil {
		shipper.Zip = *req.Zip
	}
	if req.ContactName != nil {
		shipper.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		shipper.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		shipper.ContactPhone = *req.ContactPhone
	}
	if req.Notes != nil {
		shipper.Notes = *req.Notes
	}
	if req.IsActive != nil {
		shipper.IsActive = *req.IsActive
	}

	shipper.LastUpdatedAt = time.Now().UTC()
	shipper.LastUpdatedBy = requestingUserID

	if err := s.shipperRepo.UpdateShipper(ctx, shipper); err != nil {
		return nil, err
	}
	return &shipper, nil
}

func (s *shipperService) DeleteShipper(ctx context.Context, shipperID string, requestingUserID string) error {
	if err := s.shipperRepo.DeleteShipper(ctx, shipperID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Shipper deleted", slog.String("shipper_id", shipperID), slog.String("user_id", requestingUserID))
	return nil
}
