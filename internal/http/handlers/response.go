package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/state"
)

// Response wraps every successful payload with the session view after the call
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	View    state.View  `json:"view"`
	Success bool        `json:"success"`
}

// ErrorResponse mirrors domain.ErrorResponse for the API docs
type ErrorResponse struct {
	Error   *domain.AppError `json:"error"`
	View    *state.View      `json:"view,omitempty"`
	Success bool             `json:"success" example:"false"`
}

func respond(c *gin.Context, status int, data interface{}) {
	sess := middleware.Session(c)
	var view state.View
	if sess != nil {
		view = sess.Resolve()
	}
	c.JSON(status, Response{Data: data, View: view, Success: true})
}

// fail writes err together with the session view, so the client can render
// the toast and redirect that came with the failure.
func fail(c *gin.Context, err error) {
	appErr, ok := domain.IsAppError(err)
	if !ok {
		appErr = domain.NewInternalError("", err)
	}
	appErr.RequestID = middleware.RequestID(c)
	appErr.UserID = c.GetString(middleware.UserIDKey)
	appErr.Path = c.Request.URL.Path
	appErr.Method = c.Request.Method

	resp := ErrorResponse{Error: appErr}
	if sess := middleware.Session(c); sess != nil {
		view := sess.Resolve()
		resp.View = &view
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, resp)
}

func badRequest(c *gin.Context, err error) {
	fail(c, domain.NewAppError("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest, err))
}
