package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"
	"ozeanLicht/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidTransaction = errors.New("trans_id, product_id and a valid buyer_email are required")

type TransactionsRepository interface {
	Upsert(ctx context.Context, txn *domain.Transaction) error
	AssignUser(ctx context.Context, id uint64, userID string) error
	AttachOrder(ctx context.Context, id uint64, orderID, courseID uint64) error
	FindByUserID(ctx context.Context, userID string) ([]domain.Transaction, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type OrderCreator interface {
	AutoCreateOrder(ctx context.Context, txn domain.Transaction) (domain.Order, bool, error)
}

type TransactionsService struct {
	transactionRepo TransactionsRepository
	userRepo        UserFinder
	orders          OrderCreator
	validate        *validator.Validate
}

func NewTransactionsService(transactionRepo TransactionsRepository, userRepo UserFinder, orders OrderCreator, validate *validator.Validate) *TransactionsService {
	return &TransactionsService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		orders:          orders,
		validate:        validate,
	}
}

// IngestTransaction stores a transaction reported by the legacy payment
// platform and creates or refreshes the order it pays for.
func (s *TransactionsService) IngestTransaction(ctx context.Context, txn domain.Transaction) (domain.IngestResult, error) {
	txn.TransID = strings.TrimSpace(txn.TransID)
	txn.ProductID = strings.TrimSpace(txn.ProductID)
	txn.BuyerEmail = strings.ToLower(strings.TrimSpace(txn.BuyerEmail))

	if txn.TransID == "" || txn.ProductID == "" || s.validate.Var(txn.BuyerEmail, "required,email") != nil {
		return domain.IngestResult{}, ErrInvalidTransaction
	}

	txn.Status = domain.NormalizeOrderStatus(txn.Status)

	if err := s.transactionRepo.Upsert(ctx, &txn); err != nil {
		logger.Error("Failed to store transaction", "trans_id", txn.TransID, "error", err)
		return domain.IngestResult{}, err
	}
	metrics.TransactionsIngested.WithLabelValues(txn.Status).Inc()

	if txn.UserID == nil {
		s.assignOwner(ctx, &txn)
	}

	result := domain.IngestResult{Transaction: txn}

	order, created, err := s.orders.AutoCreateOrder(ctx, txn)
	if err != nil {
		if errors.Is(err, domain.ErrCourseMappingNotFound) {
			logger.Warn("Transaction has no course mapping, order skipped", "trans_id", txn.TransID, "product_id", txn.ProductID)
			return result, nil
		}
		return result, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.transactionRepo.AttachOrder(ctx, txn.ID, order.ID, order.CourseID); err != nil {
		logger.Warn("Failed to attach order to transaction", "trans_id", txn.TransID, "error", err)
	} else {
		result.Transaction.OrderID = &order.ID
		result.Transaction.CourseID = &order.CourseID
	}

	result.Order = &order
	result.OrderCreated = created

	return result, nil
}

func (s *TransactionsService) assignOwner(ctx context.Context, txn *domain.Transaction) {
	user, err := s.userRepo.FindByEmail(ctx, txn.BuyerEmail)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			logger.Warn("Failed to look up buyer", "trans_id", txn.TransID, "error", err)
		}
		return
	}

	if err := s.transactionRepo.AssignUser(ctx, txn.ID, user.ID); err != nil {
		logger.Warn("Failed to assign transaction owner", "trans_id", txn.TransID, "error", err)
		return
	}

	txn.UserID = &user.ID
}

func (s *TransactionsService) GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.transactionRepo.FindByUserID(ctx, userID)
}
