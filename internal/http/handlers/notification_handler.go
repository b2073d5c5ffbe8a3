package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// NotificationHandler handles the notification inbox and broadcasts
type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

// BroadcastRequest is a notification sent to every user
type BroadcastRequest struct {
	Title   string `json:"title" example:"Room open"`
	Message string `json:"message" example:"Squad cup lobby opens in 10 minutes"`
}

// Inbox returns the notifications with the viewer's unread count
// @Summary Notifications
// @Tags notifications
// @Produce json
// @Param X-Session-ID header string false "Client session id"
// @Success 200 {object} Response{data=usecase.Inbox}
// @Router /notifications [get]
func (h *NotificationHandler) Inbox(c *gin.Context) {
	respond(c, http.StatusOK, h.notificationUseCase.Inbox(middleware.Session(c)))
}

// MarkAllRead marks every current notification read for the session user
// @Summary Mark all read
// @Tags notifications
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=usecase.Inbox}
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	inbox, err := h.notificationUseCase.MarkAllRead(c.Request.Context(), middleware.Session(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, inbox)
}

// Broadcast sends a notification to all users
// @Summary Broadcast notification
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param request body BroadcastRequest true "Notification"
// @Success 201 {object} Response{data=domain.Notification}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/notifications [post]
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.notificationUseCase.Broadcast(c.Request.Context(), middleware.Session(c), req.Title, req.Message)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, n)
}
