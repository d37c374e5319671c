package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
	"github.com/lanewise/freight_tms_app/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListParams) (*dto.ListUsersResponse, error) {
	users, nextToken, err := s.userRepo.ListUsers(ctx, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	return dto.ToListUsersResponse(users, nextToken), nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "Failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "Username already taken", apperrors.ErrDuplicate)
		}
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username),
	)
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := *existing

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewAppError(500, "Failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.userRepo.DeactivateUser(ctx, userID, requestingUserID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("User deactivated",
		slog.String("user_id", userID),
		slog.String("deactivated_by", requestingUserID),
	)
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a hash comparison so lookups for unknown usernames take
			// roughly as long as failed password checks.
			utils.CheckPasswordHash(password, "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
			return nil, apperrors.NewAppError(401, "Invalid credentials", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewAppError(401, "Invalid credentials", apperrors.ErrNotFound)
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(403, "Account is deactivated", apperrors.ErrForbidden)
	}
	return user, nil
}
