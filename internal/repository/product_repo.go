package repository

import (
	"context"

	"almacen/internal/dto"
	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and their
// one-to-one issue record. Services depend on this interface, not on the
// concrete GORM implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateImagePath(ctx context.Context, id uuid.UUID, path string) error

	CountByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) (int64, error)
	CountBySupplierID(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// Issue record (one per product at most)
	FindIssueByProductID(ctx context.Context, productID uuid.UUID) (*model.ProductIssue, error)
	SaveIssue(ctx context.Context, issue *model.ProductIssue) error
	DeleteIssueByProductID(ctx context.Context, productID uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variations").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variations").Where("slug = ?", slug).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.VariationID != "" {
		q = q.Joins("JOIN variations ON variations.product_id = products.id").
			Where("variations.id = ?", filter.VariationID)
	}
	// Price range is inclusive on both ends
	if filter.MinPrice != nil {
		q = q.Where("sale_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("sale_price <= ?", *filter.MaxPrice)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Variations").Order("registration_date ASC").
		Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) UpdateImagePath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("image_path", path).Error
}

func (r *productRepo) CountByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id IN ?", categoryIDs).Count(&count).Error
	return count, err
}

func (r *productRepo) CountBySupplierID(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("supplier_id = ?", supplierID).Count(&count).Error
	return count, err
}

func (r *productRepo) FindIssueByProductID(ctx context.Context, productID uuid.UUID) (*model.ProductIssue, error) {
	var issue model.ProductIssue
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *productRepo) SaveIssue(ctx context.Context, issue *model.ProductIssue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

func (r *productRepo) DeleteIssueByProductID(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductIssue{}).Error
}

