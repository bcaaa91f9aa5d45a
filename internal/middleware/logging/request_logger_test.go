package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/canteen/internal/logging"
)

func TestRequestLogger_ServerError(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.POST("/orders", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to place order.")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Contains(t, line["error"], "Failed to place order.")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "info")

	e := echo.New()
	e.Use(RequestLogger(base))

	var handlerLoggerSeen bool
	e.GET("/ok", func(c echo.Context) error {
		handlerLoggerSeen = logging.FromContext(c.Request().Context()) != base
		return c.NoContent(http.StatusOK)
	})
	e.GET("/orders/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerLoggerSeen)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "rid-1", line["request_id"])
	assert.Equal(t, "/ok", line["route"])
	assert.Equal(t, "http_request", line["msg"])
	assert.NotContains(t, line, "resource_id")
	assert.EqualValues(t, 200, line["status"])

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/42", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Order not found"}`, rec.Body.String())

	line = map[string]any{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "/orders/:id", line["route"])
	assert.Equal(t, "42", line["resource_id"])
	assert.Equal(t, "Order not found", line["message"])
}
