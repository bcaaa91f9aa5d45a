package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/models"
	"github.com/Skotchmaster/canteen/internal/repo"
)

type OrderService struct {
	Repo      *repo.GormRepo
	Publisher Publisher
}

// PlaceOrder persists one order for cart together with its lines, or nothing.
// The total is computed from catalog prices; claimedTotal, when given, must
// match it to the cent.
func (s *OrderService) PlaceOrder(ctx context.Context, cart *Cart, claimedTotal *decimal.Decimal) (*models.Order, error) {
	if cart == nil || cart.Empty() {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		menu, err := tx.GetMenuItemsByIDs(ctx, cart.ItemIDs())
		if err != nil {
			return err
		}

		total := decimal.Zero
		lines := cart.Lines()
		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			mi, ok := menu[l.ItemID]
			if !ok {
				return fmt.Errorf("%w: menu item %d does not exist", ErrValidation, l.ItemID)
			}
			total = total.Add(mi.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
			items = append(items, models.OrderItem{MenuItemID: l.ItemID, Quantity: l.Quantity})
		}
		total = total.Round(2)

		if claimedTotal != nil && !claimedTotal.Round(2).Equal(total) {
			return fmt.Errorf("%w: got %s, want %s", ErrTotalMismatch, claimedTotal.StringFixed(2), total.StringFixed(2))
		}

		order = &models.Order{
			Status:     models.StatusReceived,
			TotalPrice: total,
			Items:      items,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, newOrderEvent(EventOrderCreated, order))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return order, err
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	to, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var (
		order *models.Order
		from  models.Status
	)
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %d: %w", id, ErrNotFound)
			}
			return err
		}

		from = o.Status
		if !models.CanTransition(from, to) {
			if from.Terminal() {
				return fmt.Errorf("%w: order %d is already %s", ErrConflict, id, from)
			}
			return fmt.Errorf("%w: cannot move order %d from %s to %s", ErrConflict, id, from, to)
		}

		if err := tx.UpdateOrderStatus(ctx, o, to); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := newOrderEvent(EventOrderStatusChanged, order)
	ev.PreviousStatus = from
	publish(ctx, s.Publisher, ev)
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteOrder(ctx, id); err != nil {
			return err
		}
		order = o
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	publish(ctx, s.Publisher, newOrderEvent(EventOrderDeleted, order))
	return nil
}
