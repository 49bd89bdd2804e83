package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// CreateOrder snapshots an offer detail into a new order for the caller.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var input usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.CreateOrder(c.Request().Context(), callerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order created successfully")
}

// ListOrders returns the orders visible to the caller.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	input := &usecase.ListOrdersInput{Status: c.QueryParam("status")}

	businessUserID, err := parseOptionalUUIDQuery(c, "business_user_id")
	if err != nil {
		return err
	}
	input.BusinessUserID = businessUserID

	customerUserID, err := parseOptionalUUIDQuery(c, "customer_user_id")
	if err != nil {
		return err
	}
	input.CustomerUserID = customerUserID

	outputs, err := h.uc.ListOrders(c.Request().Context(), callerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// GetOrder returns a single order visible to the caller.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orderID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOrder(c.Request().Context(), callerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// UpdateOrderStatus changes the order status. The payload contract is
// strict, so the raw body is inspected for unexpected keys before binding.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orderID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	var input usecase.UpdateOrderStatusInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	extra, err := usecase.UnknownKeys(raw, "status")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	input.ExtraFields = extra

	output, err := h.uc.UpdateOrderStatus(c.Request().Context(), callerID, orderID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order updated successfully")
}

// DeleteOrder removes an order. Staff only.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orderID, err := parseUUIDParam(c, "pk")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), callerID, orderID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// OrderCount returns the number of in-progress orders for a business user.
func (h *OrderHandler) OrderCount(c echo.Context) error {
	businessUserID, err := parseUUIDParam(c, "business_user_id")
	if err != nil {
		return err
	}

	count, err := h.uc.OrderCount(c.Request().Context(), businessUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.OrderCountOutput{OrderCount: count}, "")
}

// CompletedOrderCount returns the number of completed orders for a business user.
func (h *OrderHandler) CompletedOrderCount(c echo.Context) error {
	businessUserID, err := parseUUIDParam(c, "business_user_id")
	if err != nil {
		return err
	}

	count, err := h.uc.CompletedOrderCount(c.Request().Context(), businessUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.CompletedOrderCountOutput{CompletedOrderCount: count}, "")
}
