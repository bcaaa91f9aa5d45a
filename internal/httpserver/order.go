package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/canteen/internal/logging"
	"github.com/Skotchmaster/canteen/internal/service"
	"github.com/Skotchmaster/canteen/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := service.CartFromRequest(req.Items)
	if err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid item data", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid item data")
	}

	order, err := h.Svc.PlaceOrder(ctx, cart, req.TotalPrice)
	if err != nil {
		if errors.Is(err, service.ErrTotalMismatch) {
			l.Warn("create_order_error", "status", 400, "reason", "total price mismatch", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "total price mismatch")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid item data", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid item data")
		}
		l.Error("create_order_error", "status", 500, "reason", "cannot create order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to place order.")
	}

	l.Info("create_order_success", "order_id", order.ID, "lines", len(order.Items))
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{
		Message: "Order placed successfully.",
		ID:      order.ID,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "reason", "cannot fetch orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching orders")
	}

	l.Info("list_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, transport.NewOrderResponses(orders))
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_error", "status", 500, "reason", "cannot fetch order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching order")
	}

	return c.JSON(http.StatusOK, transport.NewOrderResponse(*order))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_status_error", "status", 400, "reason", "invalid status", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_status_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("update_status_error", "status", 409, "reason", "transition not allowed", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "status transition not allowed")
		}
		l.Error("update_status_error", "status", 500, "reason", "cannot update order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating order status")
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Order status updated successfully"})
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("delete_order_error", "status", 500, "reason", "cannot delete order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting order")
	}

	l.Info("delete_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Order deleted successfully"})
}
