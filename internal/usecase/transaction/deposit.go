package transaction

import (
	"context"
	"net/http"
	"strings"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// SubmitDeposit records a pending deposit claim for admin review
func (uc *TransactionUseCase) SubmitDeposit(ctx context.Context, sess *state.Session, claim usecase.DepositClaim) (*domain.Transaction, error) {
	user := sess.CurrentUser()
	if user == nil {
		sess.Navigate(domain.PageLogin)
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeNotAuthenticated, "You must be logged in to add money.", http.StatusUnauthorized,
		).WithRedirect(domain.PageLogin))
	}

	if claim.Amount <= 0 {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeInvalidAmount, uc.feedback.T(sess, "errorInvalidAmount", nil), http.StatusBadRequest,
		))
	}
	trxID := strings.TrimSpace(claim.TrxID)
	if trxID == "" {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeRequiredField, uc.feedback.T(sess, "errorTrxIdRequired", nil), http.StatusBadRequest,
		))
	}
	settings := uc.store.Settings()
	gateway, ok := settings.Gateway(claim.Gateway)
	if !ok || !gateway.Enabled {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeGatewayUnavailable, "This payment method is not available.", http.StatusBadRequest,
		))
	}

	uc.logger.Info("Submitting deposit claim",
		zap.String("user_id", user.ID),
		zap.String("gateway", gateway.Name),
		zap.Float64("amount", claim.Amount))

	created, err := uc.transactionRepo.Create(usecase.Detached(ctx), &domain.Transaction{
		UserID:       user.ID,
		Amount:       claim.Amount,
		SenderNumber: strings.TrimSpace(claim.SenderNumber),
		TrxID:        trxID,
		Gateway:      gateway.Name,
		Status:       domain.TransactionStatusPending,
		Date:         uc.clock.Now().UTC(),
	})
	if err != nil {
		return nil, uc.feedback.Fail(sess, "adding money", err)
	}

	uc.store.PutTransaction(created)
	uc.feedback.Success(sess, uc.feedback.T(sess, "depositSubmitted", map[string]interface{}{"amount": claim.Amount}))
	return created, nil
}
