package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ozeanLicht/business/transactions"
	"ozeanLicht/domain"
	"ozeanLicht/internal/middleware"
	"ozeanLicht/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	TransactionsHandler struct {
		transactionsService TransactionsService
		timeout             time.Duration
	}

	TransactionsService interface {
		IngestTransaction(ctx context.Context, txn domain.Transaction) (domain.IngestResult, error)
		GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	}

	// TransactionWebhookRequest is the payload the legacy payment platform
	// posts for every payment event.
	TransactionWebhookRequest struct {
		TransID    string     `json:"trans_id"`
		OrderID    string     `json:"order_id"`
		ProductID  string     `json:"product_id"`
		BuyerEmail string     `json:"buyer_email"`
		BuyerName  string     `json:"buyer_name"`
		Amount     float64    `json:"amount"`
		Currency   string     `json:"currency"`
		Status     string     `json:"status"`
		PaidAt     *time.Time `json:"paid_at"`
	}
)

func NewTransactionsHandler(transactionsService TransactionsService) *TransactionsHandler {
	return &TransactionsHandler{
		transactionsService: transactionsService,
		timeout:             15 * time.Second,
	}
}

func (h *TransactionsHandler) HandleWebhook(c echo.Context) error {
	var request TransactionWebhookRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Failed to bind webhook request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	logger.Info("Received transaction webhook", "trans_id", request.TransID, "status", request.Status)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.transactionsService.IngestTransaction(ctx, domain.Transaction{
		TransID:       request.TransID,
		LegacyOrderID: request.OrderID,
		ProductID:     request.ProductID,
		BuyerEmail:    request.BuyerEmail,
		BuyerName:     request.BuyerName,
		Amount:        request.Amount,
		Currency:      request.Currency,
		Status:        request.Status,
		PaidAt:        request.PaidAt,
	})
	if err != nil {
		if errors.Is(err, transactions.ErrInvalidTransaction) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to ingest transaction", "trans_id", request.TransID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to process transaction"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *TransactionsHandler) GetUserTransactions(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	txns, err := h.transactionsService.GetUserTransactions(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user transactions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get transactions"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(txns))
}
