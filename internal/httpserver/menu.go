package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/canteen/internal/logging"
	"github.com/Skotchmaster/canteen/internal/models"
	"github.com/Skotchmaster/canteen/internal/service"
	"github.com/Skotchmaster/canteen/internal/transport"
	"github.com/Skotchmaster/canteen/internal/util"
)

type MenuSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error)
}

type MenuHTTP struct {
	Svc *service.MenuService
	// Search is nil when no search backend is configured.
	Search MenuSearcher
}

func (h *MenuHTTP) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list_menu_items")

	items, err := h.Svc.ListMenuItems(ctx)
	if err != nil {
		l.Error("list_menu_items_error", "status", 500, "reason", "cannot fetch menu items", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching menu items")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_menu_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_menu_item_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	item, err := h.Svc.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_menu_item_error", "status", 404, "reason", "menu item not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		l.Error("get_menu_item_error", "status", 500, "reason", "cannot fetch menu item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching menu item")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create_menu_item")

	var req transport.CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_menu_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateMenuItem(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_menu_item_error", "status", 400, "reason", "invalid menu item", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item")
		}
		l.Error("create_menu_item_error", "status", 500, "reason", "cannot add menu item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding menu item")
	}

	l.Info("create_menu_item_success", "menu_item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHTTP) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.update_menu_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_menu_item_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	var req transport.PatchMenuItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_menu_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.PatchMenuItem(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_menu_item_error", "status", 400, "reason", "invalid menu item", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_menu_item_error", "status", 404, "reason", "menu item not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		l.Error("update_menu_item_error", "status", 500, "reason", "cannot update menu item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating menu item")
	}

	l.Info("update_menu_item_success", "menu_item_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Menu item updated successfully"})
}

func (h *MenuHTTP) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete_menu_item")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_menu_item_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	if err := h.Svc.DeleteMenuItem(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_menu_item_error", "status", 404, "reason", "menu item not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Menu item not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("delete_menu_item_error", "status", 409, "reason", "menu item is used by orders", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "Menu item is used by existing orders")
		}
		l.Error("delete_menu_item_error", "status", 500, "reason", "cannot delete menu item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting menu item")
	}

	l.Info("delete_menu_item_success", "menu_item_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Menu item deleted successfully"})
}

func (h *MenuHTTP) SearchMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search_menu_items")

	if h.Search == nil {
		l.Warn("search_menu_items_error", "status", 503, "reason", "search disabled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is disabled")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_menu_items_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page, from, size := util.Calculate(
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize),
	)

	total, items, err := h.Search.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_menu_items_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error searching menu items")
	}

	return c.JSON(http.StatusOK, transport.SearchMenuResponse{
		Total: total,
		Page:  page,
		Size:  size,
		Items: items,
	})
}
