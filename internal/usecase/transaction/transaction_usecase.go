package transaction

import (
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/state"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// TransactionUseCase implements usecase.TransactionUseCase
type TransactionUseCase struct {
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
	store           *state.Store
	feedback        *usecase.Feedback
	clock           clockwork.Clock
	logger          *logger.Logger
}

// NewTransactionUseCase creates a new transaction usecase
func NewTransactionUseCase(
	transactionRepo domain.TransactionRepository,
	userRepo domain.UserRepository,
	store *state.Store,
	feedback *usecase.Feedback,
	clock clockwork.Clock,
	logger *logger.Logger,
) usecase.TransactionUseCase {
	logger.Info("TransactionUseCase initialized successfully")
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		store:           store,
		feedback:        feedback,
		clock:           clock,
		logger:          logger,
	}
}

// List returns every transaction, newest claims first as stored
func (uc *TransactionUseCase) List() []*domain.Transaction {
	return uc.store.Transactions()
}

// History returns the session user's transactions
func (uc *TransactionUseCase) History(sess *state.Session) ([]*domain.Transaction, error) {
	user := sess.CurrentUser()
	if user == nil {
		sess.Navigate(domain.PageLogin)
		return nil, domain.NewUnauthorizedError("").WithRedirect(domain.PageLogin)
	}
	var own []*domain.Transaction
	for _, tx := range uc.store.Transactions() {
		if tx.UserID == user.ID {
			own = append(own, tx)
		}
	}
	return own, nil
}
