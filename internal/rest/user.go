package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	userService "ozeanLicht/business/user"
	"ozeanLicht/domain"
	"ozeanLicht/internal/middleware"
	"ozeanLicht/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (domain.AuthResult, error)
	RequestMagicLink(ctx context.Context, email, redirectTo string) error
	VerifyMagicLink(ctx context.Context, token, ipAddress, userAgent string) (domain.AuthResult, error)
	Logout(ctx context.Context, userID, token string) error
	VerifyEmail(ctx context.Context, verificationCode string) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MagicLinkRequest struct {
	Email      string `json:"email" validate:"required,email"`
	RedirectTo string `json:"redirect_to"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"error"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		FullName: reqUser.FullName,
		Email:    reqUser.Email,
		Password: reqUser.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		case errors.Is(err, userService.ErrInvalidEmail), errors.Is(err, userService.ErrWeakPassword):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to register user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to register user"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		case errors.Is(err, userService.ErrEmailNotVerified):
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to login with user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to login"})
	}

	return c.JSON(http.StatusOK, authResponse("Login successful", result, ""))
}

// RequestMagicLink emails a one-time sign-in link.
func (h *UserHandler) RequestMagicLink(c echo.Context) error {
	var req MagicLinkRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "a valid email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.RequestMagicLink(ctx, req.Email, req.RedirectTo); err != nil {
		if errors.Is(err, userService.ErrInvalidEmail) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to send magic link", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to send magic link"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Check your email for the sign-in link",
	})
}

// MagicLinkCallback signs the user in with the token from a magic link.
func (h *UserHandler) MagicLinkCallback(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.userService.VerifyMagicLink(ctx, token, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if errors.Is(err, userService.ErrInvalidOrExpired) || errors.Is(err, userService.ErrMagicLinkUsed) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to verify magic link", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to verify magic link"})
	}

	return c.JSON(http.StatusOK, authResponse("Login successful", result, userService.SafeRedirect(c.QueryParam("redirect_to"))))
}

func authResponse(message string, result domain.AuthResult, redirectTo string) map[string]interface{} {
	body := map[string]interface{}{
		"success":             true,
		"message":             message,
		"token":               result.Token,
		"expires_at":          result.ExpiresAt,
		"user":                result.User,
		"linked_orders":       result.Linked.LinkedOrders,
		"linked_transactions": result.Linked.LinkedTransactions,
	}

	if result.NewUser {
		body["new_user"] = true
	}

	if redirectTo != "" {
		body["redirect_to"] = redirectTo
	}

	return body
}

// Logout handles user logout by invalidating token
func (h *UserHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get(middleware.ContextToken).(string)
	if !ok {
		logger.Error("Failed to get token from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.userService.Logout(ctx, userID, token); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to logout"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	encCode, err := url.PathUnescape(c.Param("code"))
	if err != nil {
		encCode = c.Param("code")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.VerifyEmail(ctx, encCode); err != nil {
		if errors.Is(err, userService.ErrInvalidOrExpired) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to verify email", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to verify email"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Successfully verified email",
	})
}

// Me returns the authenticated user
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get user"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
	})
}
