package transaction

import (
	"context"
	"net/http"

	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
	"go.uber.org/zap"
)

// Review records an admin decision on a deposit claim. Approval credits the
// owner's snapshot balance plus the claim amount. Nothing prevents the same
// claim from being approved, and credited, again.
func (uc *TransactionUseCase) Review(ctx context.Context, sess *state.Session, transactionID string, status domain.TransactionStatus) (*usecase.ReviewResult, error) {
	uc.logger.Info("Starting transaction review",
		zap.String("transaction_id", transactionID),
		zap.String("status", string(status)))

	if !status.IsReviewOutcome() {
		return nil, uc.feedback.Reject(sess, domain.NewBusinessRuleError(
			domain.ErrCodeInvalidStatus,
			"Status must be Approved or Rejected.",
			http.StatusBadRequest,
		))
	}

	ctx = usecase.Detached(ctx)

	updatedTx, err := uc.transactionRepo.Update(ctx, transactionID, domain.Fields{
		domain.FieldStatus: status,
	})
	if err == nil && updatedTx == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return nil, uc.feedback.Fail(sess, "updating transaction status", err)
	}
	uc.store.PutTransaction(updatedTx)

	result := &usecase.ReviewResult{Transaction: updatedTx}
	if status != domain.TransactionStatusApproved {
		uc.logger.Info("Transaction rejected", zap.String("transaction_id", updatedTx.ID))
		return result, nil
	}

	owner, ok := uc.store.User(updatedTx.UserID)
	if !ok {
		uc.logger.Warn("Approved transaction owner not in snapshot, credit skipped",
			zap.String("transaction_id", updatedTx.ID),
			zap.String("user_id", updatedTx.UserID),
			zap.Float64("amount", updatedTx.Amount))
		result.CreditSkipped = true
		return result, nil
	}

	newBalance := owner.WalletBalance + updatedTx.Amount
	uc.logger.Debug("Crediting approved deposit",
		zap.String("user_id", owner.ID),
		zap.Float64("old_balance", owner.WalletBalance),
		zap.Float64("new_balance", newBalance))

	updatedUser, err := uc.userRepo.Update(ctx, owner.ID, domain.Fields{
		domain.FieldWalletBalance: newBalance,
	})
	if err == nil && updatedUser == nil {
		err = domain.ErrRowNotFound
	}
	if err != nil {
		return result, uc.feedback.Fail(sess, "approving transaction", err)
	}

	uc.store.PutUser(updatedUser)
	sess.RefreshUser(updatedUser)
	result.Owner = updatedUser

	uc.logger.Info("Transaction approved and credited",
		zap.String("transaction_id", updatedTx.ID),
		zap.String("user_id", updatedUser.ID),
		zap.Float64("wallet_balance", updatedUser.WalletBalance))
	return result, nil
}
