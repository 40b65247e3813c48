package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

var ErrInvalidSlug = errors.New("invalid slug")

// CourseRepository contract interface
type CourseRepository interface {
	FindAll(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
	FindBySlug(ctx context.Context, slug string) (domain.Course, error)
}

// BlogRepository contract interface
type BlogRepository interface {
	FindAll(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (domain.Blog, error)
}

type catalogService struct {
	courseRepo CourseRepository
	blogRepo   BlogRepository
}

func NewCatalogService(courseRepo CourseRepository, blogRepo BlogRepository) *catalogService {
	return &catalogService{
		courseRepo: courseRepo,
		blogRepo:   blogRepo,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *catalogService) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list courses")
		return nil, fmt.Errorf("context error: %w", err)
	}

	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Limit = clampLimit(filter.Limit)

	courses, err := s.courseRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to list courses", err)
		return nil, err
	}

	return courses, nil
}

func (s *catalogService) GetCourseBySlug(ctx context.Context, slug string) (domain.Course, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Course{}, ErrInvalidSlug
	}

	course, err := s.courseRepo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrCourseNotFound) {
			logger.Error("Failed to find course", err)
		}
		return domain.Course{}, err
	}

	return course, nil
}

func (s *catalogService) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list blogs")
		return nil, fmt.Errorf("context error: %w", err)
	}

	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Limit = clampLimit(filter.Limit)

	blogs, err := s.blogRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to list blogs", err)
		return nil, err
	}

	return blogs, nil
}

func (s *catalogService) GetBlogBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Blog{}, ErrInvalidSlug
	}

	blog, err := s.blogRepo.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrBlogNotFound) {
			logger.Error("Failed to find blog", err)
		}
		return domain.Blog{}, err
	}

	return blog, nil
}
