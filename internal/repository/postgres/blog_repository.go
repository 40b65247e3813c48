package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ozeanLicht/domain"

	"gorm.io/gorm"
)

type BlogRepository struct {
	DB *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{
		DB: db,
	}
}

// FindAll lists published posts without their body.
func (r *BlogRepository) FindAll(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Omit("content").Where("is_published = ?", true)

	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}

	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var blogs []domain.Blog
	if err := query.Order("published_at DESC").Order("id DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("failed to find blogs: %w", err)
	}

	return blogs, nil
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	var blog domain.Blog

	err := r.DB.WithContext(ctx).Where("slug = ? AND is_published = ?", slug, true).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Blog{}, domain.ErrBlogNotFound
		}
		return domain.Blog{}, fmt.Errorf("failed to find blog: %w", err)
	}

	return blog, nil
}
