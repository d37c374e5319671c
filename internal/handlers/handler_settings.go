package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// settingsHandler handles HTTP requests for application settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

func newSettingsHandler(ss portssvc.SettingsSvc) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// RegisterSettingsRoutes registers the settings routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("/quote-form", h.getQuoteFormSettings)
		settings.PUT("/quote-form", h.updateQuoteFormSettings)
	}
}

// getQuoteFormSettings godoc
// @Summary Get quote form settings
// @Description Returns the quote form configuration, falling back to defaults when nothing is stored.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.QuoteFormSettingsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/quote-form [get]
func (h *settingsHandler) getQuoteFormSettings(c *gin.Context) {
	settings, err := h.settingsService.GetQuoteFormSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteFormSettingsResponse(settings))
}

// updateQuoteFormSettings godoc
// @Summary Update quote form settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateQuoteFormSettingsRequest true "Quote form configuration"
// @Success 200 {object} dto.QuoteFormSettingsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/quote-form [put]
func (h *settingsHandler) updateQuoteFormSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateQuoteFormSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	settings := domain.QuoteFormSettings{
		QuoteNumberPrefix: req.QuoteNumberPrefix,
		RequiredFields:    req.RequiredFields,
	}
	if err := h.settingsService.SaveQuoteFormSettings(c.Request.Context(), settings, requestingUserID); err != nil {
		logger.Error("Failed to save quote form settings", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteFormSettingsResponse(&settings))
}
