package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/canteen/internal/models"
)

func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.MenuItem")
}

// CreateOrder inserts the order row and then one row per entry in order.Items.
// Callers wanting all-or-nothing semantics run it inside Transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	db := r.DB.WithContext(ctx)

	items := order.Items
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := db.Omit(clause.Associations).Create(&items).Error; err != nil {
		return err
	}
	order.Items = items
	return nil
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := withLines(r.DB.WithContext(ctx)).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := withLines(r.DB.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForUpdate loads the bare order row with a row lock held until the
// surrounding transaction ends. SQLite ignores the locking clause.
func (r *GormRepo) GetOrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, order *models.Order, status models.Status) error {
	if err := r.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return err
	}
	order.Status = status
	return nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	db := r.DB.WithContext(ctx)

	if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}

	res := db.Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
