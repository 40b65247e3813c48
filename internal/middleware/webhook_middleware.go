package middleware

import (
	"crypto/subtle"
	"net/http"

	"ozeanLicht/pkg/logger"

	jsonres "ozeanLicht/pkg/response"

	"github.com/labstack/echo/v4"
)

const HeaderWebhookToken = "X-Webhook-Token"

// WebhookToken guards endpoints called by the legacy payment platform with a
// shared secret header.
func WebhookToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderWebhookToken)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("Rejected webhook call", "ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid webhook token"))
			}

			return next(c)
		}
	}
}
