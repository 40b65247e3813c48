package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]string{
		"Successful": OrderStatusPaid,
		"paid":       OrderStatusPaid,
		" completed": OrderStatusPaid,
		"chargeback": OrderStatusRefunded,
		"refunded":   OrderStatusRefunded,
		"cancelled":  OrderStatusCanceled,
		"failed":     OrderStatusCanceled,
		"":           OrderStatusPending,
		"waiting":    OrderStatusPending,
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeOrderStatus(in), "status %q", in)
	}
}

func TestMergeOrderStatus(t *testing.T) {
	assert.Equal(t, OrderStatusPaid, MergeOrderStatus(OrderStatusPaid, OrderStatusPending))
	assert.Equal(t, OrderStatusRefunded, MergeOrderStatus(OrderStatusRefunded, OrderStatusPending))
	assert.Equal(t, OrderStatusCanceled, MergeOrderStatus(OrderStatusCanceled, OrderStatusPending))
	assert.Equal(t, OrderStatusPaid, MergeOrderStatus(OrderStatusPending, OrderStatusPaid))
	assert.Equal(t, OrderStatusRefunded, MergeOrderStatus(OrderStatusPaid, OrderStatusRefunded))
	assert.Equal(t, OrderStatusPending, MergeOrderStatus("", OrderStatusPending))
}

func TestTransactionExternalOrderID(t *testing.T) {
	assert.Equal(t, "ord-1", Transaction{TransID: "tx-1", LegacyOrderID: "ord-1"}.ExternalOrderID())
	assert.Equal(t, "tx-1", Transaction{TransID: "tx-1"}.ExternalOrderID())
}
