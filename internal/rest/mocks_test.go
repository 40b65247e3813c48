package rest

import (
	"context"

	"ozeanLicht/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (domain.AuthResult, error) {
	args := m.Called(ctx, email, password, ipAddress, userAgent)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockUserService) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	return m.Called(ctx, email, redirectTo).Error(0)
}

func (m *MockUserService) VerifyMagicLink(ctx context.Context, token, ipAddress, userAgent string) (domain.AuthResult, error) {
	args := m.Called(ctx, token, ipAddress, userAgent)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockUserService) VerifyEmail(ctx context.Context, verificationCode string) error {
	return m.Called(ctx, verificationCode).Error(0)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockOrdersService struct {
	mock.Mock
}

func (m *MockOrdersService) LinkUserOrders(ctx context.Context, userID, email string) (domain.LinkResult, error) {
	args := m.Called(ctx, userID, email)
	return args.Get(0).(domain.LinkResult), args.Error(1)
}

func (m *MockOrdersService) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersService) GetUserCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Course), args.Error(1)
}

type MockTransactionsService struct {
	mock.Mock
}

func (m *MockTransactionsService) IngestTransaction(ctx context.Context, txn domain.Transaction) (domain.IngestResult, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(domain.IngestResult), args.Error(1)
}

func (m *MockTransactionsService) GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *MockCatalogService) GetCourseBySlug(ctx context.Context, slug string) (domain.Course, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Course), args.Error(1)
}

func (m *MockCatalogService) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Blog), args.Error(1)
}

func (m *MockCatalogService) GetBlogBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Blog), args.Error(1)
}
