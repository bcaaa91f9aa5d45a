package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/canteen/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateOrderItem struct {
	ItemID   uint `json:"itemId"`
	Quantity int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items      []CreateOrderItem `json:"items"`
	TotalPrice *decimal.Decimal  `json:"totalPrice"`
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderLine is the join row as clients see it nested under each menu item.
type OrderLine struct {
	Quantity uint `json:"quantity"`
}

type OrderMenuItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    uint            `json:"quantity"`
	OrderItem   OrderLine       `json:"OrderItem"`
}

// OrderResponse is the order read model. TotalPrice is a JSON number, already
// rounded to cents by the service.
type OrderResponse struct {
	ID         uint            `json:"id"`
	Status     models.Status   `json:"status"`
	TotalPrice float64         `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	MenuItems  []OrderMenuItem `json:"MenuItems"`
}

func NewOrderResponse(o models.Order) OrderResponse {
	items := make([]OrderMenuItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderMenuItem{
			ID:          it.MenuItem.ID,
			Name:        it.MenuItem.Name,
			Description: it.MenuItem.Description,
			Price:       it.MenuItem.Price,
			Quantity:    it.Quantity,
			OrderItem:   OrderLine{Quantity: it.Quantity},
		})
	}

	return OrderResponse{
		ID:         o.ID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice.Round(2).InexactFloat64(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		MenuItems:  items,
	}
}

func NewOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

type CreateMenuItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

type PatchMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

type SearchMenuResponse struct {
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Items []models.MenuItem `json:"items"`
}
