package loggingmw

import (
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/canteen/internal/logging"
)

// RequestLogger stores a request-scoped logger in the request context and
// writes one access line per request once the handler's error is rendered.
// Lines carry the matched route, plus the :id param for order and menu
// item routes.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"route", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			if id := c.Param("id"); id != "" {
				l = l.With("resource_id", id)
			}

			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := []any{
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch status := c.Response().Status; {
			case status >= 500:
				l.Error("http_request", append(attrs, "error", err)...)
			case status >= 400:
				l.Warn("http_request", append(attrs, "message", clientMessage(err))...)
			default:
				l.Info("http_request", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}

// requestID prefers the caller's header and falls back to the id the
// RequestID middleware put on the response.
func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func clientMessage(err error) any {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return nil
}
