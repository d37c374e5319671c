package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/cache"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// settingsService reads and writes keyed settings documents with a Redis
// read-through cache in front of the database.
type settingsService struct {
	settingsRepo portsrepo.SettingsRepository
	cache        *cache.SettingsCache
}

// NewSettingsService creates a new SettingsService. A nil cache is valid and
// simply disables caching.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, settingsCache *cache.SettingsCache) portssvc.SettingsSvc {
	return &settingsService{settingsRepo: settingsRepo, cache: settingsCache}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

// defaultQuoteFormSettings is the single source of truth for the fallback
// used when the store is empty or unreachable.
func defaultQuoteFormSettings() *domain.QuoteFormSettings {
	return &domain.QuoteFormSettings{QuoteNumberPrefix: domain.DefaultQuoteNumberPrefix}
}

// GetQuoteFormSettings returns the stored quote form configuration, falling
// back to defaults when nothing is stored. Store errors are surfaced so the
// caller can decide whether to degrade.
func (s *settingsService) GetQuoteFormSettings(ctx context.Context) (*domain.QuoteFormSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if raw, ok := s.cache.Get(ctx, domain.SettingsKeyQuoteForm); ok {
		var settings domain.QuoteFormSettings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return &settings, nil
		}
		// A corrupt cache entry falls through to the database.
		s.cache.Invalidate(ctx, domain.SettingsKeyQuoteForm)
	}

	setting, err := s.settingsRepo.FindSettingByKey(ctx, domain.SettingsKeyQuoteForm)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return defaultQuoteFormSettings(), nil
		}
		logger.Error("Failed to load quote form settings", slog.String("error", err.Error()))
		return nil, err
	}

	var settings domain.QuoteFormSettings
	if err := json.Unmarshal(setting.Value, &settings); err != nil {
		logger.Error("Stored quote form settings are malformed, using defaults", slog.String("error", err.Error()))
		return defaultQuoteFormSettings(), nil
	}
	if settings.QuoteNumberPrefix == "" {
		settings.QuoteNumberPrefix = domain.DefaultQuoteNumberPrefix
	}

	s.cache.Set(ctx, domain.SettingsKeyQuoteForm, setting.Value)
	return &settings, nil
}

// SaveQuoteFormSettings stores the configuration and drops the cached copy.
func (s *settingsService) SaveQuoteFormSettings(ctx context.Context, settings domain.QuoteFormSettings, requestingUserID string) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize quote form settings", err)
	}

	now := time.Now().UTC()
	setting := domain.Setting{
		Key:   domain.SettingsKeyQuoteForm,
		Value: value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.settingsRepo.UpsertSetting(ctx, setting); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, domain.SettingsKeyQuoteForm)
	middleware.GetLoggerFromCtx(ctx).Info("Quote form settings updated", slog.String("user_id", requestingUserID))
	return nil
}
