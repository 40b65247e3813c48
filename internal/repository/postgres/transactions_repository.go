package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ozeanLicht/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionsRepository struct {
	DB *gorm.DB
}

func NewTransactionsRepository(db *gorm.DB) *TransactionsRepository {
	return &TransactionsRepository{
		DB: db,
	}
}

// Upsert stores a transaction keyed by trans_id. A redelivered transaction
// only refreshes its payment fields; ownership and order links are kept.
// A pending event never downgrades a settled status or clears paid_at.
func (r *TransactionsRepository) Upsert(ctx context.Context, txn *domain.Transaction) error {
	txn.BuyerEmail = strings.ToLower(strings.TrimSpace(txn.BuyerEmail))
	txn.UpdatedAt = time.Now()

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trans_id"}},
		DoUpdates: append(clause.AssignmentColumns([]string{"amount", "currency", "buyer_name", "updated_at"}),
			clause.Assignment{
				Column: clause.Column{Name: "status"},
				Value: gorm.Expr("CASE WHEN excluded.status = ? AND transactions.status <> ? THEN transactions.status ELSE excluded.status END",
					domain.OrderStatusPending, domain.OrderStatusPending),
			},
			clause.Assignment{
				Column: clause.Column{Name: "paid_at"},
				Value:  gorm.Expr("COALESCE(excluded.paid_at, transactions.paid_at)"),
			},
		),
	}).Create(txn).Error
	if err != nil {
		return fmt.Errorf("failed to upsert transaction: %w", err)
	}

	stored, err := r.FindByTransID(ctx, txn.TransID)
	if err != nil {
		return err
	}
	*txn = stored

	return nil
}

func (r *TransactionsRepository) FindByTransID(ctx context.Context, transID string) (domain.Transaction, error) {
	var txn domain.Transaction

	err := r.DB.WithContext(ctx).Where("trans_id = ?", transID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}
		return domain.Transaction{}, fmt.Errorf("failed to find transaction: %w", err)
	}

	return txn, nil
}

// LinkByEmail attaches every unowned transaction paid with email to userID.
func (r *TransactionsRepository) LinkByEmail(ctx context.Context, userID, email string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Transaction{}).
		Where("LOWER(buyer_email) = ? AND user_id IS NULL", strings.ToLower(strings.TrimSpace(email))).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to link transactions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *TransactionsRepository) AttachOrder(ctx context.Context, id uint64, orderID, courseID uint64) error {
	result := r.DB.WithContext(ctx).Model(&domain.Transaction{}).Where("id = ?", id).Updates(map[string]interface{}{
		"order_id":   orderID,
		"course_id":  courseID,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to attach order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func (r *TransactionsRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	var txns []domain.Transaction

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	return txns, nil
}

// AssignUser sets the owner of a transaction that has none yet.
func (r *TransactionsRepository) AssignUser(ctx context.Context, id uint64, userID string) error {
	err := r.DB.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ? AND user_id IS NULL", id).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to assign transaction owner: %w", err)
	}

	return nil
}
