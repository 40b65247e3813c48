package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (domain.Course, error)
	ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (domain.Blog, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	binder         *echo.DefaultBinder
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		binder:         &echo.DefaultBinder{},
		timeout:        10 * time.Second,
	}
}

func (h *CatalogHandler) ListCourses(c echo.Context) error {
	var filter domain.CourseFilter
	if err := h.binder.BindQueryParams(c, &filter); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid query parameters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, err := h.catalogService.ListCourses(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list courses"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

func (h *CatalogHandler) GetCourseBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	course, err := h.catalogService.GetCourseBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get course", "slug", c.Param("slug"), "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get course"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"course": course,
	})
}

func (h *CatalogHandler) ListBlogs(c echo.Context) error {
	var filter domain.BlogFilter
	if err := h.binder.BindQueryParams(c, &filter); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid query parameters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	blogs, err := h.catalogService.ListBlogs(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list blogs"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"blogs": blogs,
	})
}

func (h *CatalogHandler) GetBlogBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	blog, err := h.catalogService.GetBlogBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get blog", "slug", c.Param("slug"), "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get blog"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"blog": blog,
	})
}
