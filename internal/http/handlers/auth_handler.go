package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	userUseCase usecase.UserUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userUseCase usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{userUseCase: userUseCase}
}

// RegisterRequest represents the sign-up form
type RegisterRequest struct {
	Email      string `json:"email" binding:"required" example:"player@example.com"`
	Password   string `json:"password" binding:"required" example:"secret123"`
	Name       string `json:"name" example:"Rahim Uddin"`
	Phone      string `json:"phone" example:"01700000000"`
	InGameName string `json:"in_game_name" example:"RahimFF"`
	PlayerUID  string `json:"player_uid" example:"123456789"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"player@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// Register handles account creation
// @Summary Register
// @Description Create an account and its profile. With email confirmation enabled no session is returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param request body RegisterRequest true "Sign-up form"
// @Success 201 {object} Response{data=usecase.RegisterResult}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.userUseCase.Register(c.Request.Context(), middleware.Session(c), usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Phone:      req.Phone,
		InGameName: req.InGameName,
		PlayerUID:  req.PlayerUID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

// Login handles user authentication
// @Summary User login
// @Description Sign in and bind the session to the returned access token
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response{data=usecase.LoginResult}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.userUseCase.Login(c.Request.Context(), middleware.Session(c), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

// Logout handles sign-out
// @Summary Logout
// @Tags auth
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response
// @Failure 502 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.userUseCase.Logout(c.Request.Context(), middleware.Session(c)); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}
