package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	OrderHandler *OrderHTTP
	MenuHandler  *MenuHTTP
	DB           Pinger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB != nil {
			if err := d.DB.Ping(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	menu := api.Group("/menuItems")
	menu.GET("", d.MenuHandler.ListMenuItems)
	menu.GET("/search", d.MenuHandler.SearchMenuItems)
	menu.GET("/:id", d.MenuHandler.GetMenuItem)
	menu.POST("", d.MenuHandler.CreateMenuItem)
	menu.PUT("/:id", d.MenuHandler.UpdateMenuItem)
	menu.DELETE("/:id", d.MenuHandler.DeleteMenuItem)

	orders := api.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PUT("/:id/status", d.OrderHandler.UpdateStatus)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)
}
