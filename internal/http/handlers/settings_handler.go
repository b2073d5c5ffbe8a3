package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// SettingsHandler serves branding, payment and theme settings
type SettingsHandler struct {
	settingsUseCase usecase.SettingsUseCase
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUseCase usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUseCase: settingsUseCase}
}

// Get returns the app settings. Non-admins get the public subset.
// @Summary App settings
// @Tags settings
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Success 200 {object} Response{data=domain.AppSettings}
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings := h.settingsUseCase.Get()
	if user := middleware.Session(c).CurrentUser(); user == nil || !user.IsAdmin {
		settings = settings.Public()
	}
	respond(c, http.StatusOK, settings)
}

// Update writes the app settings, inserting the row when none exists yet
// @Summary Update settings
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param request body domain.AppSettings true "Settings"
// @Success 200 {object} Response{data=domain.AppSettings}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req domain.AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := h.settingsUseCase.Update(c.Request.Context(), middleware.Session(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, settings)
}

// Theme renders the theme colors and fonts as CSS custom properties
// @Summary Theme stylesheet
// @Tags settings
// @Produce text/css
// @Success 200 {string} string
// @Router /settings/theme.css [get]
func (h *SettingsHandler) Theme(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(h.settingsUseCase.ThemeCSS()))
}
