package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patrimonio/api/internal/middleware"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/repository"
	"github.com/patrimonio/api/internal/services"
)

// TransactionHandler handles transaction-log endpoints
type TransactionHandler struct {
	transactionSvc *services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionSvc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionSvc: transactionSvc}
}

// Query handles GET /transactions
// @Summary Query own transaction history
// @Description Exact-match filters: assetSymbol, actionType, date (DD-MM-YYYY)
// @Tags transactions
// @Produce json
// @Param assetSymbol query string false "asset symbol"
// @Param actionType query string false "BUY or SELL"
// @Param date query string false "DD-MM-YYYY"
// @Success 200 {object} models.TransactionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) Query(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	txs, err := h.transactionSvc.History(c.Request.Context(), userID, c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrNoTransactions) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TransactionsResponse{Transaction: txs})
}

// Get handles GET /transactions/:id
// @Summary Get one transaction
// @Tags transactions
// @Produce json
// @Param id path int true "transaction id"
// @Success 200 {object} models.TransactionsResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid transaction ID",
		})
		return
	}

	t, err := h.transactionSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": t})
}

// Create handles POST /transactions
// @Summary Append a transaction record
// @Description Direct insert with field validation; no ledger bookkeeping
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body models.CreateTransactionRequest true "transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	t, err := h.transactionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "user does not exist",
			})
			return
		}
		if errors.Is(err, services.ErrInvalidFilter) || errors.Is(err, services.ErrInvalidTradeArg) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, t)
}
