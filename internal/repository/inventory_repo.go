package repository

import (
	"context"

	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository defines data access for inventory rows.
// ListByProduct orders by id ascending so "first record" is stable across
// calls even when a product has several rows.
type InventoryRepository interface {
	Create(ctx context.Context, inv *model.Inventory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	List(ctx context.Context) ([]model.Inventory, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Inventory, error)
	LowStock(ctx context.Context, threshold int) ([]model.Inventory, error)
	Update(ctx context.Context, inv *model.Inventory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]model.Inventory, error) {
	var list []model.Inventory
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *inventoryRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Inventory, error) {
	var list []model.Inventory
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *inventoryRepo) LowStock(ctx context.Context, threshold int) ([]model.Inventory, error) {
	var list []model.Inventory
	// Threshold is inclusive
	err := r.db.WithContext(ctx).Where("current_stock <= ?", threshold).Order("current_stock asc").Find(&list).Error
	return list, err
}

func (r *inventoryRepo) Update(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Inventory{}, "id = ?", id).Error
}
