package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ozeanLicht/domain"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{
		DB: db,
	}
}

func (r *CourseRepository) FindAll(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Where("is_published = ?", true)

	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}

	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var courses []domain.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to find courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (domain.Course, error) {
	var course domain.Course

	err := r.DB.WithContext(ctx).Where("slug = ? AND is_published = ?", slug, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Course{}, domain.ErrCourseNotFound
		}
		return domain.Course{}, fmt.Errorf("failed to find course: %w", err)
	}

	return course, nil
}

// FindOwnedByUser returns the courses behind the user's paid orders.
func (r *CourseRepository) FindOwnedByUser(ctx context.Context, userID string) ([]domain.Course, error) {
	var courses []domain.Course

	paid := r.DB.Model(&domain.Order{}).
		Select("course_id").
		Where("user_id = ? AND status = ?", userID, domain.OrderStatusPaid)

	err := r.DB.WithContext(ctx).
		Where("id IN (?)", paid).
		Order("title ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find owned courses: %w", err)
	}

	return courses, nil
}
