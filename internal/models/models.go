package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string          `gorm:"not null"                  json:"name"`
	Description string          `gorm:"not null"                  json:"description"`
	Price       decimal.Decimal `gorm:"type:text;not null"        json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"                  json:"id"`
	Status     Status          `gorm:"type:varchar(16);not null;default:received" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"               json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// OrderItem is the join row between an order and a menu item.
type OrderItem struct {
	ID         uint `gorm:"primaryKey;autoIncrement"                    json:"id"`
	OrderID    uint `gorm:"not null;uniqueIndex:idx_order_menu_item"    json:"orderId"`
	MenuItemID uint `gorm:"not null;uniqueIndex:idx_order_menu_item"    json:"menuItemId"`
	Quantity   uint `gorm:"not null;default:1;check:quantity>0"         json:"quantity"`

	MenuItem MenuItem `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
