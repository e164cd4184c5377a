package repository

import (
	"context"

	"almacen/internal/dto"
	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseRepository defines data access for purchase orders. Reads always
// preload items with their products so totals can be recomputed from
// current prices at the call site.
type PurchaseRepository interface {
	// Create persists the purchase and its nested items in one transaction.
	Create(ctx context.Context, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	Update(ctx context.Context, p *model.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	// GORM inserts the purchase and its Items association in one tx.
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Supplier").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})

	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Order("purchase_date DESC").
		Limit(filter.Limit).Offset(offset).Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) Update(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Omit("Items").Save(p).Error
}

func (r *purchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items").Delete(&model.Purchase{ID: id}).Error
}

