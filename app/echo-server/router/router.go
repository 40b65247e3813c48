package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"ozeanLicht/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/magic-link", handler.RequestMagicLink, rateLimit)
	auth.GET("/callback", handler.MagicLinkCallback)
	auth.POST("/register", handler.Register, rateLimit)
	auth.POST("/login", handler.Login, rateLimit)
	auth.GET("/verify-email/:code", handler.VerifyEmail)

	auth.POST("/logout", handler.Logout, authRequired)
	auth.GET("/me", handler.Me, authRequired)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.POST("/link-user-orders", handler.LinkUserOrders, authRequired)
	api.GET("/orders", handler.GetUserOrders, authRequired)
	api.GET("/me/courses", handler.GetUserCourses, authRequired)

	admin := api.Group("/admin", authRequired, adminOnly)
	admin.POST("/link-user-orders", handler.AdminLinkUserOrders)
}

func SetupTransactionsRoutes(api *echo.Group, handler *rest.TransactionsHandler, authRequired echo.MiddlewareFunc, webhookAuth echo.MiddlewareFunc) {
	api.GET("/me/transactions", handler.GetUserTransactions, authRequired)

	webhooks := api.Group("/webhooks", webhookAuth)
	webhooks.POST("/transactions", handler.HandleWebhook)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	api.GET("/courses", handler.ListCourses)
	api.GET("/courses/:slug", handler.GetCourseBySlug)
	api.GET("/blogs", handler.ListBlogs)
	api.GET("/blogs/:slug", handler.GetBlogBySlug)
}

func SetupOpsRoutes(e *echo.Echo, checks map[string]HealthCheck) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				components[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		return c.JSON(status, map[string]interface{}{
			"status":     overall,
			"components": components,
		})
	})
}
