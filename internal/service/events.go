package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/canteen/internal/logging"
	"github.com/Skotchmaster/canteen/internal/models"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderDeleted       = "order_deleted"
)

type Publisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type OrderEvent struct {
	EventID        uuid.UUID       `json:"eventId"`
	Type           string          `json:"type"`
	OrderID        uint            `json:"orderId"`
	Status         models.Status   `json:"status"`
	PreviousStatus models.Status   `json:"previousStatus,omitempty"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

func newOrderEvent(typ string, o *models.Order) OrderEvent {
	return OrderEvent{
		EventID:    uuid.New(),
		Type:       typ,
		OrderID:    o.ID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
}

// publish never fails the caller: the database row is already committed.
func publish(ctx context.Context, p Publisher, ev OrderEvent) {
	if p == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(pubCtx, strconv.FormatUint(uint64(ev.OrderID), 10), ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "type", ev.Type, "order_id", ev.OrderID, "error", err)
	}
}
