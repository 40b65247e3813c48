package postgres

import (
	"context"
	"testing"

	"ozeanLicht/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersRepository_LinkByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "anna@example.com")
	other := createTestUser(t, db, "other@example.com")

	createTestOrder(t, db, "o-1", "anna@example.com", nil)
	createTestOrder(t, db, "o-2", "Anna@Example.com", nil)
	createTestOrder(t, db, "o-3", "anna@example.com", strPtr(other.ID))
	createTestOrder(t, db, "o-4", "someone@example.com", nil)

	linked, err := repo.LinkByEmail(ctx, user.ID, "ANNA@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), linked)

	var orders []domain.Order
	require.NoError(t, db.Order("external_order_id").Find(&orders).Error)
	require.Len(t, orders, 4)

	assert.Equal(t, user.ID, *orders[0].UserID)
	assert.Equal(t, user.ID, *orders[1].UserID)
	assert.Equal(t, other.ID, *orders[2].UserID, "already linked order must keep its owner")
	assert.Nil(t, orders[3].UserID, "orders of other emails stay untouched")

	linked, err = repo.LinkByEmail(ctx, user.ID, "anna@example.com")
	require.NoError(t, err)
	assert.Zero(t, linked)
}

func TestOrdersRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	first := &domain.Order{ExternalOrderID: "o-1", Email: "A@example.com", CourseID: 1, Status: domain.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "a@example.com", first.Email)

	err := repo.Create(ctx, &domain.Order{ExternalOrderID: "o-1", Email: "a@example.com", CourseID: 1, Status: domain.OrderStatusPaid})
	assert.ErrorIs(t, err, domain.ErrOrderExists)
}

func TestOrdersRepository_UpdatePayment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "anna@example.com")
	order := createTestOrder(t, db, "o-1", "anna@example.com", nil)

	update := &domain.Order{ID: order.ID, Status: domain.OrderStatusRefunded, Amount: 50, Currency: "EUR", UserID: strPtr(user.ID)}
	require.NoError(t, repo.UpdatePayment(ctx, update))

	assert.Equal(t, domain.OrderStatusRefunded, update.Status)
	assert.Equal(t, float64(50), update.Amount)
	require.NotNil(t, update.UserID)
	assert.Equal(t, user.ID, *update.UserID)
	assert.Equal(t, "o-1", update.ExternalOrderID)

	err := repo.UpdatePayment(ctx, &domain.Order{ID: 999, Status: domain.OrderStatusPaid})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrdersRepository_FindByExternalIDAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "anna@example.com")
	createTestOrder(t, db, "o-1", "anna@example.com", strPtr(user.ID))
	createTestOrder(t, db, "o-2", "anna@example.com", nil)

	order, err := repo.FindByExternalID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ExternalOrderID)

	_, err = repo.FindByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	orders, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o-1", orders[0].ExternalOrderID)
}
