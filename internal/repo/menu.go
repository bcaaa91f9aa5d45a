package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/models"
)

func (r *GormRepo) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMenuItemsByIDs returns the menu items found among ids, keyed by id.
// Missing ids are simply absent from the map.
func (r *GormRepo) GetMenuItemsByIDs(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	out := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *GormRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteMenuItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountOrderItemsForMenuItem(ctx context.Context, menuItemID uint) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
