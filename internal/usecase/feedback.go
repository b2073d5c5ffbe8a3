package usecase

import (
	"context"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/i18n"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"go.uber.org/zap"
)

// Feedback reports operation outcomes to the log and to the session toast
type Feedback struct {
	logger  *logger.Logger
	catalog *i18n.Catalog
}

// NewFeedback creates a feedback reporter
func NewFeedback(logger *logger.Logger, catalog *i18n.Catalog) *Feedback {
	return &Feedback{logger: logger, catalog: catalog}
}

// T renders a catalog key in the session language
func (f *Feedback) T(sess *state.Session, key string, replacements map[string]interface{}) string {
	lang := i18n.Fallback
	if sess != nil {
		lang = sess.Language()
	}
	return f.catalog.T(lang, key, replacements)
}

// Success shows a success toast
func (f *Feedback) Success(sess *state.Session, message string) {
	sess.Toast(message, state.ToastSuccess)
}

// Notice shows a toast of the given kind without logging
func (f *Feedback) Notice(sess *state.Session, message string, kind state.ToastKind) {
	sess.Toast(message, kind)
}

// Reject shows a failed precondition and returns it
func (f *Feedback) Reject(sess *state.Session, err *domain.AppError) *domain.AppError {
	f.logger.Warn("Operation rejected",
		zap.String("session_id", sess.ID()),
		zap.String("code", err.Code),
		zap.String("message", err.Message))
	sess.Toast(err.Message, state.ToastError)
	return err
}

// Fail wraps a backend or auth failure as "Error in <context>: <cause>",
// logs it and shows it on the session.
func (f *Feedback) Fail(sess *state.Session, context string, err error) *domain.AppError {
	appErr := domain.NewBackendError(context, err)
	f.logger.Error("Error in "+context,
		zap.String("session_id", sess.ID()),
		zap.Error(err))
	sess.Toast(appErr.Message, state.ToastError)
	return appErr
}

// Detached returns a context for backend writes that outlives the client
// request but keeps its values.
func Detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
