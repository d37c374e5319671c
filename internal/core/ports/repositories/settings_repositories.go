package repositories

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// SettingsRepository defines persistence operations for application settings.
type SettingsRepository interface {
	// FindSettingByKey retrieves the raw setting value for a key, or
	// apperrors.ErrNotFound when the key has never been stored.
	FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error)

	// UpsertSetting stores the value for a key, replacing any existing value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}
