package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// SessionHandler exposes the client view state
type SessionHandler struct {
	userUseCase usecase.UserUseCase
	catalog     *i18n.Catalog
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(userUseCase usecase.UserUseCase, catalog *i18n.Catalog) *SessionHandler {
	return &SessionHandler{userUseCase: userUseCase, catalog: catalog}
}

// NavigateRequest selects a page and, for admin, a section
type NavigateRequest struct {
	Page      domain.Page         `json:"page" binding:"required" example:"wallet"`
	AdminView domain.AdminSubPage `json:"admin_view,omitempty" example:"dashboard"`
}

// LanguageRequest switches the session language
type LanguageRequest struct {
	Language string `json:"language" binding:"required" example:"bn"`
}

// Get returns the current view
// @Summary Current view
// @Description Returns the session view after applying the page guards
// @Tags session
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Success 200 {object} Response
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	respond(c, http.StatusOK, nil)
}

// Navigate changes the current page
// @Summary Navigate
// @Description Switch page. Navigation clears the selected tournament; admin defaults to the dashboard.
// @Tags session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param request body NavigateRequest true "Target page"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Router /session/navigate [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !req.Page.Valid() {
		fail(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Unknown page", http.StatusBadRequest, nil).
			WithDetails(string(req.Page)))
		return
	}
	if req.AdminView != "" && !req.AdminView.Valid() {
		fail(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Unknown admin view", http.StatusBadRequest, nil).
			WithDetails(string(req.AdminView)))
		return
	}

	middleware.Session(c).Navigate(req.Page, req.AdminView)
	respond(c, http.StatusOK, nil)
}

// SetLanguage loads a translation catalog and switches the session to it
// @Summary Switch language
// @Description Unknown languages fall back to English
// @Tags session
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param request body LanguageRequest true "Language code"
// @Success 200 {object} Response
// @Failure 500 {object} ErrorResponse
// @Router /session/language [put]
func (h *SessionHandler) SetLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lang, err := h.catalog.Load(req.Language)
	if err != nil {
		fail(c, domain.NewInternalError("Failed to load translations", err))
		return
	}
	middleware.Session(c).SetLanguage(lang)
	respond(c, http.StatusOK, gin.H{"language": lang})
}

// Refresh re-reads the signed-in user's profile from the backend
// @Summary Refresh profile
// @Tags session
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=domain.User}
// @Failure 500 {object} ErrorResponse
// @Router /session/refresh [post]
func (h *SessionHandler) Refresh(c *gin.Context) {
	user, err := h.userUseCase.Refresh(c.Request.Context(), middleware.Session(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}

// DismissToast hides the visible toast
// @Summary Dismiss toast
// @Tags session
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response
// @Router /session/toast [delete]
func (h *SessionHandler) DismissToast(c *gin.Context) {
	middleware.Session(c).Toaster().Dismiss()
	respond(c, http.StatusOK, nil)
}
