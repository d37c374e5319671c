package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for application settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// FindSettingByKey retrieves the raw JSONB value for a settings key.
func (r *PgxSettingsRepository) FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error) {
	query := `
		SELECT key, value, created_at, created_by, last_updated_at, last_updated_by
		FROM app_settings
		WHERE key = $1;
	`
	var s domain.Setting
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&s.Key, &s.Value, &s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find setting "+key, err)
	}
	return &s, nil
}

// UpsertSetting stores the value for a key, replacing any existing value.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO app_settings (key, value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		setting.Key, setting.Value,
		setting.CreatedAt, setting.CreatedBy, setting.LastUpdatedAt, setting.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert setting "+setting.Key, err)
	}
	return nil
}
