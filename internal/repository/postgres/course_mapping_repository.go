package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ozeanLicht/domain"

	"gorm.io/gorm"
)

type CourseMappingRepository struct {
	DB *gorm.DB
}

func NewCourseMappingRepository(db *gorm.DB) *CourseMappingRepository {
	return &CourseMappingRepository{
		DB: db,
	}
}

func (r *CourseMappingRepository) FindCourseID(ctx context.Context, productID string) (uint64, error) {
	var mapping domain.CourseMapping

	err := r.DB.WithContext(ctx).Where("product_id = ?", strings.TrimSpace(productID)).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCourseMappingNotFound
		}
		return 0, fmt.Errorf("failed to find course mapping: %w", err)
	}

	return mapping.CourseID, nil
}
