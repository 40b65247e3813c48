package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"
	"ozeanLicht/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidLinkRequest = errors.New("user_id and a valid email are required")

type OrdersRepository interface {
	LinkByEmail(ctx context.Context, userID, email string) (int64, error)
	Create(ctx context.Context, order *domain.Order) error
	FindByExternalID(ctx context.Context, externalID string) (domain.Order, error)
	UpdatePayment(ctx context.Context, order *domain.Order) error
	FindByUserID(ctx context.Context, userID string) ([]domain.Order, error)
}

type TransactionsLinker interface {
	LinkByEmail(ctx context.Context, userID, email string) (int64, error)
}

type CourseMappingRepository interface {
	FindCourseID(ctx context.Context, productID string) (uint64, error)
}

type CourseRepository interface {
	FindOwnedByUser(ctx context.Context, userID string) ([]domain.Course, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type OrdersService struct {
	orderRepo       OrdersRepository
	transactionRepo TransactionsLinker
	mappingRepo     CourseMappingRepository
	courseRepo      CourseRepository
	userRepo        UserFinder
	validate        *validator.Validate
}

func NewOrdersService(
	orderRepo OrdersRepository,
	transactionRepo TransactionsLinker,
	mappingRepo CourseMappingRepository,
	courseRepo CourseRepository,
	userRepo UserFinder,
	validate *validator.Validate,
) *OrdersService {
	return &OrdersService{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		mappingRepo:     mappingRepo,
		courseRepo:      courseRepo,
		userRepo:        userRepo,
		validate:        validate,
	}
}

// LinkUserOrders attaches the unowned orders and transactions bought with
// email to userID. Transaction linking is best effort.
func (s *OrdersService) LinkUserOrders(ctx context.Context, userID, email string) (domain.LinkResult, error) {
	userID = strings.TrimSpace(userID)
	email = strings.ToLower(strings.TrimSpace(email))

	if userID == "" || s.validate.Var(email, "required,email") != nil {
		return domain.LinkResult{}, ErrInvalidLinkRequest
	}

	start := time.Now()
	defer func() {
		metrics.LinkLatency.Observe(time.Since(start).Seconds())
	}()

	linkedOrders, err := s.orderRepo.LinkByEmail(ctx, userID, email)
	if err != nil {
		logger.Error("Failed to link orders", "user_id", userID, "error", err)
		return domain.LinkResult{}, err
	}
	metrics.OrdersLinked.Add(float64(linkedOrders))

	result := domain.LinkResult{LinkedOrders: linkedOrders}

	linkedTransactions, err := s.transactionRepo.LinkByEmail(ctx, userID, email)
	if err != nil {
		logger.Warn("Failed to link transactions", "user_id", userID, "error", err)
		return result, nil
	}
	metrics.TransactionsLinked.Add(float64(linkedTransactions))
	result.LinkedTransactions = linkedTransactions

	logger.Info("Linked user orders",
		"user_id", userID,
		"linked_orders", linkedOrders,
		"linked_transactions", linkedTransactions,
	)

	return result, nil
}

// AutoLinkOnLogin runs LinkUserOrders for a user who just signed in.
// Failures never block the login.
func (s *OrdersService) AutoLinkOnLogin(ctx context.Context, user domain.User) domain.LinkResult {
	if user.ID == "" || user.Email == "" {
		return domain.LinkResult{}
	}

	result, err := s.LinkUserOrders(ctx, user.ID, user.Email)
	if err != nil {
		logger.Warn("Auto link on login failed", "user_id", user.ID, "error", err)
		return domain.LinkResult{}
	}

	return result
}

// AutoCreateOrder creates the order behind a transaction, or refreshes it
// when the database reports it already exists.
func (s *OrdersService) AutoCreateOrder(ctx context.Context, txn domain.Transaction) (domain.Order, bool, error) {
	courseID, err := s.mappingRepo.FindCourseID(ctx, txn.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseMappingNotFound) {
			metrics.AutoCreatedOrders.WithLabelValues("unmapped").Inc()
			return domain.Order{}, false, fmt.Errorf("product %s: %w", txn.ProductID, err)
		}
		metrics.AutoCreatedOrders.WithLabelValues("failed").Inc()
		return domain.Order{}, false, err
	}

	order := domain.Order{
		ExternalOrderID: txn.ExternalOrderID(),
		Email:           txn.BuyerEmail,
		UserID:          txn.UserID,
		CourseID:        courseID,
		Status:          domain.NormalizeOrderStatus(txn.Status),
		Amount:          txn.Amount,
		Currency:        txn.Currency,
	}

	if order.UserID == nil {
		user, err := s.userRepo.FindByEmail(ctx, txn.BuyerEmail)
		switch {
		case err == nil:
			order.UserID = &user.ID
		case errors.Is(err, domain.ErrUserNotFound):
		default:
			logger.Warn("Failed to look up buyer", "email", txn.BuyerEmail, "error", err)
		}
	}

	err = s.orderRepo.Create(ctx, &order)
	if err == nil {
		metrics.AutoCreatedOrders.WithLabelValues("created").Inc()
		logger.Info("Order created from transaction", "order_id", order.ID, "trans_id", txn.TransID)
		return order, true, nil
	}

	if !errors.Is(err, domain.ErrOrderExists) {
		metrics.AutoCreatedOrders.WithLabelValues("failed").Inc()
		return domain.Order{}, false, err
	}

	existing, err := s.orderRepo.FindByExternalID(ctx, order.ExternalOrderID)
	if err != nil {
		metrics.AutoCreatedOrders.WithLabelValues("failed").Inc()
		return domain.Order{}, false, err
	}

	existing.Status = domain.MergeOrderStatus(existing.Status, order.Status)
	existing.Amount = order.Amount
	existing.Currency = order.Currency
	existing.UserID = order.UserID

	if err := s.orderRepo.UpdatePayment(ctx, &existing); err != nil {
		metrics.AutoCreatedOrders.WithLabelValues("failed").Inc()
		return domain.Order{}, false, err
	}

	metrics.AutoCreatedOrders.WithLabelValues("updated").Inc()

	return existing, false, nil
}

func (s *OrdersService) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *OrdersService) GetUserCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	return s.courseRepo.FindOwnedByUser(ctx, userID)
}
