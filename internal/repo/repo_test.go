package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/db/dbtest"
	"github.com/Skotchmaster/canteen/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: dbtest.New(t)}
}

func seedItem(t *testing.T, r *GormRepo, name, price string) models.MenuItem {
	t.Helper()

	it := models.MenuItem{Name: name, Description: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, r.CreateMenuItem(context.Background(), &it))
	return it
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	item := seedItem(t, r, "Biryani", "12")

	boom := errors.New("boom")
	err := r.Transaction(ctx, func(tx *GormRepo) error {
		order := &models.Order{
			Status:     models.StatusReceived,
			TotalPrice: decimal.RequireFromString("12"),
			Items:      []models.OrderItem{{MenuItemID: item.ID, Quantity: 1}},
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	var lines int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestCreateOrderAndListWithLines(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedItem(t, r, "Idli", "2.00")
	b := seedItem(t, r, "Vada", "2.50")

	order := &models.Order{
		Status:     models.StatusReceived,
		TotalPrice: decimal.RequireFromString("6.50"),
		Items: []models.OrderItem{
			{MenuItemID: b.ID, Quantity: 1},
			{MenuItemID: a.ID, Quantity: 2},
		},
	}
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)
	for _, it := range order.Items {
		assert.Equal(t, order.ID, it.OrderID)
		assert.NotZero(t, it.ID)
	}

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Vada", orders[0].Items[0].MenuItem.Name)
	assert.Equal(t, "Idli", orders[0].Items[1].MenuItem.Name)
	assert.EqualValues(t, 2, orders[0].Items[1].Quantity)
}

func TestGetMenuItemsByIDs(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := seedItem(t, r, "Dosa", "4")
	b := seedItem(t, r, "Uttapam", "5")

	found, err := r.GetMenuItemsByIDs(ctx, []uint{a.ID, b.ID, 99})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Uttapam", found[b.ID].Name)

	empty, err := r.GetMenuItemsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.DeleteOrder(context.Background(), 12)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	item := seedItem(t, r, "Pongal", "3")

	order := &models.Order{
		Status:     models.StatusReceived,
		TotalPrice: decimal.RequireFromString("3"),
		Items:      []models.OrderItem{{MenuItemID: item.ID, Quantity: 1}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	locked, err := r.GetOrderForUpdate(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, r.UpdateOrderStatus(ctx, locked, models.StatusPicked))
	assert.Equal(t, models.StatusPicked, locked.Status)

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPicked, got.Status)
	assert.Len(t, got.Items, 1)
}
