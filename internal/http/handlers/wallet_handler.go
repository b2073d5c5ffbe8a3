package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// WalletHandler handles deposit claims and the wallet history
type WalletHandler struct {
	transactionUseCase usecase.TransactionUseCase
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(transactionUseCase usecase.TransactionUseCase) *WalletHandler {
	return &WalletHandler{transactionUseCase: transactionUseCase}
}

// DepositRequest represents a deposit claim
type DepositRequest struct {
	Gateway      string  `json:"gateway" binding:"required" example:"bKash"`
	Amount       float64 `json:"amount" example:"200"`
	TrxID        string  `json:"trx_id" example:"8N7A6B5C4D"`
	SenderNumber string  `json:"sender_number" example:"01700000000"`
}

// ReviewRequest is an admin decision on a deposit claim
type ReviewRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required" example:"Approved"`
}

// History returns the session user's transactions
// @Summary Wallet history
// @Tags wallet
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=[]domain.Transaction}
// @Failure 401 {object} ErrorResponse
// @Router /wallet/transactions [get]
func (h *WalletHandler) History(c *gin.Context) {
	txs, err := h.transactionUseCase.History(middleware.Session(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, txs)
}

// Deposit submits a deposit claim for admin review
// @Summary Submit deposit
// @Description Creates a Pending transaction. The balance changes only when an admin approves it.
// @Tags wallet
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param request body DepositRequest true "Deposit claim"
// @Success 201 {object} Response{data=domain.Transaction}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /wallet/deposits [post]
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tx, err := h.transactionUseCase.SubmitDeposit(c.Request.Context(), middleware.Session(c), usecase.DepositClaim{
		Gateway:      req.Gateway,
		Amount:       req.Amount,
		TrxID:        req.TrxID,
		SenderNumber: req.SenderNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, tx)
}

// ListAll returns every transaction for review
// @Summary List transactions
// @Tags admin
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=[]domain.Transaction}
// @Failure 403 {object} ErrorResponse
// @Router /admin/transactions [get]
func (h *WalletHandler) ListAll(c *gin.Context) {
	respond(c, http.StatusOK, h.transactionUseCase.List())
}

// Review approves or rejects a deposit claim
// @Summary Review deposit
// @Description Approving credits the owner's balance on every call
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param id path string true "Transaction ID"
// @Param request body ReviewRequest true "Decision"
// @Success 200 {object} Response{data=usecase.ReviewResult}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/transactions/{id}/review [post]
func (h *WalletHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.transactionUseCase.Review(c.Request.Context(), middleware.Session(c), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
