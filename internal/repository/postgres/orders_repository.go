package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ozeanLicht/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// LinkByEmail attaches every order placed with email that has no owner yet to userID.
func (r *OrdersRepository) LinkByEmail(ctx context.Context, userID, email string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("LOWER(email) = ? AND user_id IS NULL", strings.ToLower(strings.TrimSpace(email))).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to link orders: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	order.Email = strings.ToLower(strings.TrimSpace(order.Email))

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderExists
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByExternalID(ctx context.Context, externalID string) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Where("external_order_id = ?", externalID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// UpdatePayment refreshes status and amount of an existing order and sets its
// owner when it has none.
func (r *OrdersRepository) UpdatePayment(ctx context.Context, order *domain.Order) error {
	now := time.Now()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":     order.Status,
			"amount":     order.Amount,
			"currency":   order.Currency,
			"updated_at": now,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}

		if order.UserID != nil {
			err := tx.Model(&domain.Order{}).
				Where("id = ? AND user_id IS NULL", order.ID).
				Update("user_id", *order.UserID).Error
			if err != nil {
				return fmt.Errorf("failed to set order owner: %w", err)
			}
		}

		return tx.Where("id = ?", order.ID).First(order).Error
	})
}

func (r *OrdersRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}
