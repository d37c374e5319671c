package dto

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

// UpdateQuoteFormSettingsRequest defines the stored quote-form configuration.
type UpdateQuoteFormSettingsRequest struct {
	QuoteNumberPrefix string   `json:"quoteNumberPrefix" binding:"required,max=10"`
	RequiredFields    []string `json:"requiredFields"`
}

// QuoteFormSettingsResponse defines the data returned for quote-form settings.
type QuoteFormSettingsResponse struct {
	QuoteNumberPrefix string   `json:"quoteNumberPrefix"`
	RequiredFields    []string `json:"requiredFields,omitempty"`
}

// ToQuoteFormSettingsResponse converts domain settings to the response DTO.
func ToQuoteFormSettingsResponse(s *domain.QuoteFormSettings) QuoteFormSettingsResponse {
	return QuoteFormSettingsResponse{
		QuoteNumberPrefix: s.QuoteNumberPrefix,
		RequiredFields:    s.RequiredFields,
	}
}
