package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ozeanLicht/business/orders"
	"ozeanLicht/domain"
	"ozeanLicht/internal/middleware"
	"ozeanLicht/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		ordersService OrdersService
		users         UserLookup
		timeout       time.Duration
	}

	OrdersService interface {
		LinkUserOrders(ctx context.Context, userID, email string) (domain.LinkResult, error)
		GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
		GetUserCourses(ctx context.Context, userID string) ([]domain.Course, error)
	}

	// UserLookup loads the account a link request targets.
	UserLookup interface {
		GetUserByID(ctx context.Context, id string) (domain.User, error)
	}

	LinkUserOrdersInput struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
)

func NewOrdersHandler(ordersService OrdersService, users UserLookup) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		users:         users,
		timeout:       10 * time.Second,
	}
}

// bindLinkInput returns the trimmed request, or the message to reject it with.
func bindLinkInput(c echo.Context) (LinkUserOrdersInput, string) {
	var request LinkUserOrdersInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return request, "invalid request body"
	}

	request.UserID = strings.TrimSpace(request.UserID)
	request.Email = strings.TrimSpace(request.Email)
	if request.UserID == "" || request.Email == "" {
		return request, "user_id and email are required"
	}

	return request, ""
}

// LinkUserOrders attaches orders and transactions bought with the caller's
// own verified email to the caller's account.
func (h *OrdersHandler) LinkUserOrders(c echo.Context) error {
	request, msg := bindLinkInput(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: msg})
	}

	callerID, ok := middleware.UserID(c)
	if !ok || request.UserID != callerID {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only link your own orders"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	caller, err := h.users.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
		}
		logger.Error("Failed to load caller for order linking", "user_id", callerID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to link orders"})
	}

	if !caller.IsVerified || !strings.EqualFold(caller.Email, request.Email) {
		logger.Warn("Rejected order link for foreign email", "user_id", callerID)
		return c.JSON(http.StatusForbidden, ResponseError{Message: "you can only link orders bought with your own verified email"})
	}

	return h.link(c, ctx, callerID, caller.Email)
}

// AdminLinkUserOrders lets an admin attach any email's purchases to any
// existing account.
func (h *OrdersHandler) AdminLinkUserOrders(c echo.Context) error {
	request, msg := bindLinkInput(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, err := h.users.GetUserByID(ctx, request.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "user not found"})
		}
		logger.Error("Failed to load link target", "user_id", request.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to link orders"})
	}

	adminID, _ := middleware.UserID(c)
	logger.Info("Admin linking orders", "admin_id", adminID, "user_id", request.UserID)

	return h.link(c, ctx, request.UserID, request.Email)
}

func (h *OrdersHandler) link(c echo.Context, ctx context.Context, userID, email string) error {
	result, err := h.ordersService.LinkUserOrders(ctx, userID, email)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidLinkRequest) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to link user orders", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to link orders"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":             true,
		"linked_orders":       result.LinkedOrders,
		"linked_transactions": result.LinkedTransactions,
	})
}

func (h *OrdersHandler) GetUserOrders(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userOrders, err := h.ordersService.GetUserOrders(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get orders"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(userOrders))
}

func (h *OrdersHandler) GetUserCourses(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, err := h.ordersService.GetUserCourses(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user courses", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get courses"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(courses))
}
