package domain

// SettingsKeyQuoteForm is the well-known settings key holding quote-form
// configuration, including the quote number prefix.
const SettingsKeyQuoteForm = "quoteForm"

// DefaultQuoteNumberPrefix is the single source of truth for the quote number
// prefix used when the settings store is unavailable or holds no override.
const DefaultQuoteNumberPrefix = "QT-"

// GeneralNumberPrefix is used when a shipment has no mode of transport to
// derive a prefix from.
const GeneralNumberPrefix = "GN"

// QuoteFormSettings is the value stored under SettingsKeyQuoteForm.
type QuoteFormSettings struct {
	QuoteNumberPrefix string   `json:"quoteNumberPrefix"`
	RequiredFields    []string `json:"requiredFields,omitempty"`
}

// Setting is a keyed JSON settings document.
type Setting struct {
	Key   string `json:"key"`
	Value []byte `json:"value"` // raw JSON
	AuditFields
}
