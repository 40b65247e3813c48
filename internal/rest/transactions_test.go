package rest

import (
	"errors"
	"net/http"
	"testing"

	"ozeanLicht/business/transactions"
	"ozeanLicht/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleWebhook(t *testing.T) {
	svc := new(MockTransactionsService)
	handler := NewTransactionsHandler(svc)

	svc.On("IngestTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransID == "tx-1" && txn.LegacyOrderID == "ord-1" && txn.Amount == 49.5 && txn.PaidAt != nil
	})).Return(domain.IngestResult{OrderCreated: true}, nil)

	body := `{"trans_id":"tx-1","order_id":"ord-1","product_id":"p-1","buyer_email":"anna@example.com","amount":49.5,"currency":"EUR","status":"completed","paid_at":"2024-05-01T10:00:00Z"}`
	c, rec := newJSONContext(http.MethodPost, "/api/webhooks/transactions", body, "", "")
	require.NoError(t, handler.HandleWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleWebhook_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", transactions.ErrInvalidTransaction, http.StatusBadRequest},
		{"store failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTransactionsService)
			svc.On("IngestTransaction", mock.Anything, mock.Anything).Return(domain.IngestResult{}, tt.err)

			c, rec := newJSONContext(http.MethodPost, "/api/webhooks/transactions", `{"trans_id":"tx-1"}`, "", "")
			require.NoError(t, NewTransactionsHandler(svc).HandleWebhook(c))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusInternalServerError {
				assert.JSONEq(t, `{"error":"failed to process transaction"}`, rec.Body.String())
			}
		})
	}

	c, rec := newJSONContext(http.MethodPost, "/api/webhooks/transactions", `{"amount":"lots"}`, "", "")
	require.NoError(t, NewTransactionsHandler(new(MockTransactionsService)).HandleWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserTransactions(t *testing.T) {
	svc := new(MockTransactionsService)
	svc.On("GetUserTransactions", mock.Anything, "user-1").Return([]domain.Transaction{{TransID: "tx-1"}}, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/me/transactions", "", "user-1", "customer")
	require.NoError(t, NewTransactionsHandler(svc).GetUserTransactions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tx-1")
}

func TestGetUserTransactions_Failure(t *testing.T) {
	svc := new(MockTransactionsService)
	svc.On("GetUserTransactions", mock.Anything, "user-1").Return([]domain.Transaction(nil), errors.New("db down"))

	c, rec := newJSONContext(http.MethodGet, "/api/me/transactions", "", "user-1", "customer")
	require.NoError(t, NewTransactionsHandler(svc).GetUserTransactions(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to get transactions"}`, rec.Body.String())
}
