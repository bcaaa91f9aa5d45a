package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/canteen/internal/logging"
	"github.com/Skotchmaster/canteen/internal/models"
	"github.com/Skotchmaster/canteen/internal/repo"
	"github.com/Skotchmaster/canteen/internal/transport"
)

type MenuIndexer interface {
	IndexMenuItem(ctx context.Context, item models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error
}

type MenuService struct {
	Repo    *repo.GormRepo
	Indexer MenuIndexer
}

func (s *MenuService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.Repo.ListMenuItems(ctx)
}

func (s *MenuService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return item, err
}

func (s *MenuService) CreateMenuItem(ctx context.Context, req transport.CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	item := &models.MenuItem{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := s.Repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.index(ctx, *item)
	return item, nil
}

func (s *MenuService) PatchMenuItem(ctx context.Context, id uint, req transport.PatchMenuItemRequest) (*models.MenuItem, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if err := s.Repo.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.index(ctx, *item)
	return item, nil
}

// DeleteMenuItem refuses to remove an item that existing orders still reference.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uint) error {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		n, err := tx.CountOrderItemsForMenuItem(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: menu item %d is referenced by %d order lines", ErrConflict, id, n)
		}
		return tx.DeleteMenuItem(ctx, id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if s.Indexer != nil {
		if err := s.Indexer.DeleteMenuItem(ctx, id); err != nil {
			logging.FromContext(ctx).Error("menu_unindex_error", "menu_item_id", id, "error", err)
		}
	}
	return nil
}

func (s *MenuService) index(ctx context.Context, item models.MenuItem) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexMenuItem(ctx, item); err != nil {
		logging.FromContext(ctx).Error("menu_index_error", "menu_item_id", item.ID, "error", err)
	}
}
