package repository

import (
	"context"

	"almacen/internal/dto"
	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariationRepository defines CRUD and grouping queries for Variation.
type VariationRepository interface {
	Create(ctx context.Context, v *model.Variation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Variation, error)
	List(ctx context.Context, filter dto.VariationFilter) ([]model.Variation, error)
	Update(ctx context.Context, v *model.Variation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByCategory groups variations by their category (size/color).
	CountByCategory(ctx context.Context) ([]dto.VariationCategoryCount, error)
}

type variationRepo struct{ db *gorm.DB }

func NewVariationRepository(db *gorm.DB) VariationRepository { return &variationRepo{db: db} }

func (r *variationRepo) Create(ctx context.Context, v *model.Variation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Variation, error) {
	var v model.Variation
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variationRepo) List(ctx context.Context, filter dto.VariationFilter) ([]model.Variation, error) {
	var list []model.Variation
	q := r.db.WithContext(ctx)
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *variationRepo) Update(ctx context.Context, v *model.Variation) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *variationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Variation{}, "id = ?", id).Error
}

func (r *variationRepo) CountByCategory(ctx context.Context) ([]dto.VariationCategoryCount, error) {
	var rows []dto.VariationCategoryCount
	err := r.db.WithContext(ctx).Model(&model.Variation{}).
		Select("category, count(id) as count").
		Group("category").Order("category asc").Scan(&rows).Error
	return rows, err
}
