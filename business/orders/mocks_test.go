package orders

import (
	"context"

	"ozeanLicht/domain"

	"github.com/stretchr/testify/mock"
)

type MockOrdersRepository struct {
	mock.Mock
}

func (m *MockOrdersRepository) LinkByEmail(ctx context.Context, userID, email string) (int64, error) {
	args := m.Called(ctx, userID, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = 1
	}
	return args.Error(0)
}

func (m *MockOrdersRepository) FindByExternalID(ctx context.Context, externalID string) (domain.Order, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersRepository) UpdatePayment(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrdersRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockTransactionsLinker struct {
	mock.Mock
}

func (m *MockTransactionsLinker) LinkByEmail(ctx context.Context, userID, email string) (int64, error) {
	args := m.Called(ctx, userID, email)
	return args.Get(0).(int64), args.Error(1)
}

type MockCourseMappingRepository struct {
	mock.Mock
}

func (m *MockCourseMappingRepository) FindCourseID(ctx context.Context, productID string) (uint64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(uint64), args.Error(1)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindOwnedByUser(ctx context.Context, userID string) ([]domain.Course, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Course), args.Error(1)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}
