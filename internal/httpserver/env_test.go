package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/db/dbtest"
	"github.com/Skotchmaster/canteen/internal/models"
	"github.com/Skotchmaster/canteen/internal/repo"
	"github.com/Skotchmaster/canteen/internal/service"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []service.OrderEvent
}

func (p *capturePublisher) PublishEvent(_ context.Context, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(service.OrderEvent); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

type testEnv struct {
	T   *testing.T
	E   *echo.Echo
	DB  *gorm.DB
	Pub *capturePublisher
	M   *MenuHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb := dbtest.New(t)
	r := &repo.GormRepo{DB: gdb}
	pub := &capturePublisher{}

	env := &testEnv{
		T:   t,
		E:   echo.New(),
		DB:  gdb,
		Pub: pub,
		M:   &MenuHTTP{Svc: &service.MenuService{Repo: r}},
	}

	Register(env.E, &Deps{
		OrderHandler: &OrderHTTP{Svc: &service.OrderService{Repo: r, Publisher: pub}},
		MenuHandler:  env.M,
		DB:           r,
	})
	return env
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder, v any) {
	env.T.Helper()
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), v))
}

func (env *testEnv) message(rec *httptest.ResponseRecorder) string {
	env.T.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	env.decode(rec, &resp)
	return resp.Message
}

// seedMenu inserts menu items 1..3: 10.00, 4.25, 5.50.
func (env *testEnv) seedMenu() {
	env.T.Helper()

	for _, it := range []models.MenuItem{
		{Name: "Veg Thali", Description: "rice, dal, two curries", Price: decimal.RequireFromString("10.00")},
		{Name: "Samosa", Description: "two pieces", Price: decimal.RequireFromString("4.25")},
		{Name: "Masala Chai", Description: "hot", Price: decimal.RequireFromString("5.50")},
	} {
		require.NoError(env.T, env.DB.Create(&it).Error)
	}
}

func (env *testEnv) countRows(model any) int64 {
	env.T.Helper()

	var n int64
	require.NoError(env.T, env.DB.Model(model).Count(&n).Error)
	return n
}

func (env *testEnv) listOrders() []orderView {
	env.T.Helper()

	rec := env.do(http.MethodGet, "/api/orders", nil)
	require.Equal(env.T, http.StatusOK, rec.Code)

	var orders []orderView
	env.decode(rec, &orders)
	return orders
}

type orderView struct {
	ID         uint    `json:"id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
	MenuItems  []struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Quantity uint   `json:"quantity"`
	} `json:"MenuItems"`
}
