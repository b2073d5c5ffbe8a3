package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// UserHandler handles the signed-in user's profile
type UserHandler struct {
	userUseCase usecase.UserUseCase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetUserInfo returns the session user
// @Summary Get user information
// @Description Get the signed-in user's profile and balance
// @Tags users
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=domain.User}
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	respond(c, http.StatusOK, middleware.Session(c).CurrentUser())
}

// UpdateProfile writes the editable profile fields
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param request body usecase.ProfileUpdate true "Profile"
// @Success 200 {object} Response{data=domain.User}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req usecase.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.userUseCase.UpdateProfile(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}
