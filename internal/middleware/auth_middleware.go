package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/logger"
	"ozeanLicht/pkg/utils"

	jsonres "ozeanLicht/pkg/response"

	"github.com/labstack/echo/v4"
)

// Keys the auth middleware stores on the echo context.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// TokenValidator checks a token against the live sessions in Redis
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

// AuthMiddleware accepts a bearer JWT only while its session is still live.
// Logging out or signing in elsewhere revokes the token before it expires.
func AuthMiddleware(jwtManager *utils.JWTManager, tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Missing authorization header"))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid authorization format"))
			}

			tokenString := tokenParts[1]

			// expiry is enforced by ParseJWT
			claims, err := jwtManager.ParseJWT(tokenString)
			if err != nil {
				logger.Warn("Failed to parse JWT", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid token"))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				logger.Warn("Token not found in Redis", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Token expired or invalid"))
			}

			if userID != claims.UserID {
				logger.Error("UserID mismatch between JWT and Redis", "jwt_user_id", claims.UserID)
				return c.JSON(http.StatusUnauthorized, jsonres.Error("Invalid token"))
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextToken, tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAdmin(c) {
				return c.JSON(http.StatusForbidden, jsonres.Error("Admin access required"))
			}

			return next(c)
		}
	}
}

func IsAdmin(c echo.Context) bool {
	role, ok := c.Get(ContextRole).(string)
	return ok && strings.EqualFold(role, domain.RoleAdmin)
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(ContextUserID).(string)
	return userID, ok && userID != ""
}
