package orders

import (
	"context"
	"errors"
	"testing"

	"ozeanLicht/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	orders   *MockOrdersRepository
	txns     *MockTransactionsLinker
	mappings *MockCourseMappingRepository
	courses  *MockCourseRepository
	users    *MockUserFinder
}

func newTestService() (*OrdersService, testDeps) {
	deps := testDeps{
		orders:   new(MockOrdersRepository),
		txns:     new(MockTransactionsLinker),
		mappings: new(MockCourseMappingRepository),
		courses:  new(MockCourseRepository),
		users:    new(MockUserFinder),
	}

	svc := NewOrdersService(deps.orders, deps.txns, deps.mappings, deps.courses, deps.users, validator.New())

	return svc, deps
}

func TestLinkUserOrders(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.orders.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(2), nil)
	deps.txns.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(3), nil)

	result, err := svc.LinkUserOrders(ctx, "user-1", " Anna@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkResult{LinkedOrders: 2, LinkedTransactions: 3}, result)

	deps.orders.AssertExpectations(t)
	deps.txns.AssertExpectations(t)
}

func TestLinkUserOrders_InvalidInput(t *testing.T) {
	svc, deps := newTestService()

	for _, tc := range []struct{ userID, email string }{
		{"", "anna@example.com"},
		{"user-1", ""},
		{"user-1", "not-an-email"},
	} {
		_, err := svc.LinkUserOrders(context.Background(), tc.userID, tc.email)
		assert.ErrorIs(t, err, ErrInvalidLinkRequest)
	}

	deps.orders.AssertNotCalled(t, "LinkByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkUserOrders_OrderFailureFails(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.orders.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(0), errors.New("db down"))

	_, err := svc.LinkUserOrders(ctx, "user-1", "anna@example.com")
	assert.EqualError(t, err, "db down")
	deps.txns.AssertNotCalled(t, "LinkByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkUserOrders_TransactionFailureIsSwallowed(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.orders.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(1), nil)
	deps.txns.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(0), errors.New("timeout"))

	result, err := svc.LinkUserOrders(ctx, "user-1", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkResult{LinkedOrders: 1}, result)
}

func TestAutoLinkOnLogin(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.orders.On("LinkByEmail", ctx, "user-1", "anna@example.com").Return(int64(0), errors.New("db down"))

	result := svc.AutoLinkOnLogin(ctx, domain.User{ID: "user-1", Email: "anna@example.com"})
	assert.Equal(t, domain.LinkResult{}, result)

	assert.Equal(t, domain.LinkResult{}, svc.AutoLinkOnLogin(ctx, domain.User{}))
}

func TestAutoCreateOrder_Created(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	txn := domain.Transaction{TransID: "tx-1", LegacyOrderID: "o-1", ProductID: "p-1", BuyerEmail: "anna@example.com", Status: "successful", Amount: 111, Currency: "EUR"}

	deps.mappings.On("FindCourseID", ctx, "p-1").Return(uint64(5), nil)
	deps.users.On("FindByEmail", ctx, "anna@example.com").Return(domain.User{ID: "user-1"}, nil)
	deps.orders.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ExternalOrderID == "o-1" && o.CourseID == 5 && o.Status == domain.OrderStatusPaid &&
			o.UserID != nil && *o.UserID == "user-1"
	})).Return(nil)

	order, created, err := svc.AutoCreateOrder(ctx, txn)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(1), order.ID)
	deps.orders.AssertExpectations(t)
}

func TestAutoCreateOrder_UnknownBuyer(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	txn := domain.Transaction{TransID: "tx-1", ProductID: "p-1", BuyerEmail: "new@example.com"}

	deps.mappings.On("FindCourseID", ctx, "p-1").Return(uint64(5), nil)
	deps.users.On("FindByEmail", ctx, "new@example.com").Return(domain.User{}, domain.ErrUserNotFound)
	deps.orders.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ExternalOrderID == "tx-1" && o.UserID == nil && o.Status == domain.OrderStatusPending
	})).Return(nil)

	_, created, err := svc.AutoCreateOrder(ctx, txn)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAutoCreateOrder_ExistingOrderIsUpdated(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	owner := "user-1"
	txn := domain.Transaction{TransID: "tx-2", LegacyOrderID: "o-1", ProductID: "p-1", BuyerEmail: "anna@example.com", Status: "refunded", UserID: &owner}

	deps.mappings.On("FindCourseID", ctx, "p-1").Return(uint64(5), nil)
	deps.orders.On("Create", ctx, mock.Anything).Return(domain.ErrOrderExists)
	deps.orders.On("FindByExternalID", ctx, "o-1").Return(domain.Order{ID: 9, ExternalOrderID: "o-1", Status: domain.OrderStatusPaid}, nil)
	deps.orders.On("UpdatePayment", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == 9 && o.Status == domain.OrderStatusRefunded
	})).Return(nil)

	order, created, err := svc.AutoCreateOrder(ctx, txn)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint64(9), order.ID)
	deps.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAutoCreateOrder_UnmappedProduct(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.mappings.On("FindCourseID", ctx, "p-x").Return(uint64(0), domain.ErrCourseMappingNotFound)

	_, _, err := svc.AutoCreateOrder(ctx, domain.Transaction{TransID: "tx-1", ProductID: "p-x"})
	assert.ErrorIs(t, err, domain.ErrCourseMappingNotFound)
	deps.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetUserOrdersAndCourses(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	deps.orders.On("FindByUserID", ctx, "user-1").Return([]domain.Order{{ID: 1}}, nil)
	deps.courses.On("FindOwnedByUser", ctx, "user-1").Return([]domain.Course{{ID: 2}}, nil)

	orders, err := svc.GetUserOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	courses, err := svc.GetUserCourses(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}
