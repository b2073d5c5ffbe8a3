package notification

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// UnreadCount counts the notifications the user has not acknowledged
func UnreadCount(user *domain.User, notifications []*domain.Notification) int {
	if user == nil {
		return 0
	}
	count := 0
	for _, n := range notifications {
		if !user.HasRead(n.ID) {
			count++
		}
	}
	return count
}

// NotificationUseCase implements usecase.NotificationUseCase
type NotificationUseCase struct {
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	store            *state.Store
	feedback         *usecase.Feedback
	clock            clockwork.Clock
	logger           *logger.Logger
}

// NewNotificationUseCase creates a new notification use case
func NewNotificationUseCase(
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	store *state.Store,
	feedback *usecase.Feedback,
	clock clockwork.Clock,
	logger *logger.Logger,
) usecase.NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		store:            store,
		feedback:         feedback,
		clock:            clock,
		logger:           logger,
	}
}

// Inbox returns all notifications and the session user's unread count
func (uc *NotificationUseCase) Inbox(sess *state.Session) *usecase.Inbox {
	notifications := uc.store.Notifications()
	return &usecase.Inbox{
		Notifications: notifications,
		UnreadCount:   UnreadCount(sess.CurrentUser(), notifications),
	}
}

// MarkAllRead stores the ids of every notification known right now as the
// user's read set. Notifications broadcast later stay unread.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, sess *state.Session) (*usecase.Inbox, error) {
	user := sess.CurrentUser()
	if user == nil {
		return nil, domain.NewUnauthorizedError("")
	}

	ids := uc.store.NotificationIDs()
	updated, err := uc.userRepo.Update(usecase.Detached(ctx), user.ID, domain.Fields{
		domain.FieldReadNotificationIDs: ids,
	})
	if err == nil && updated == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "marking notifications as read", err)
	}

	uc.store.PutUser(updated)
	sess.RefreshUser(updated)
	uc.logger.Debug("Notifications marked as read",
		zap.String("user_id", updated.ID),
		zap.Int("count", len(ids)))
	return uc.Inbox(sess), nil
}

// Broadcast sends a notification to every user
func (uc *NotificationUseCase) Broadcast(ctx context.Context, sess *state.Session, title, message string) (*domain.Notification, error) {
	title, message = strings.TrimSpace(title), strings.TrimSpace(message)
	if title == "" || message == "" {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeRequiredField, "Title and message are required.", http.StatusBadRequest,
		))
	}

	created, err := uc.notificationRepo.Create(usecase.Detached(ctx), &domain.Notification{
		Title:   title,
		Message: message,
		Date:    uc.clock.Now().UTC(),
	})
	if err == nil && created == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "sending notification", err)
	}

	uc.store.AppendNotification(created)
	uc.logger.Info("Notification broadcast", zap.String("notification_id", created.ID))
	uc.feedback.Success(sess, "Notification sent to all users!")
	return created, nil
}
