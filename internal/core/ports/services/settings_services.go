package services

import (
	"context"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// SettingsSvc defines operations for reading and writing application settings.
type SettingsSvc interface {
	// GetQuoteFormSettings returns the quote form configuration, falling back
	// to defaults when nothing has been stored.
	GetQuoteFormSettings(ctx context.Context) (*domain.QuoteFormSettings, error)

	// SaveQuoteFormSettings stores the quote form configuration and
	// invalidates any cached copy.
	SaveQuoteFormSettings(ctx context.Context, settings domain.QuoteFormSettings, requestingUserID string) error
}
