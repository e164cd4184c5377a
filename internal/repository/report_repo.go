package repository

import (
	"context"

	"almacen/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductWithStock is a product row annotated with the stock summed across
// every inventory record. COALESCE keeps products without inventory at 0
// instead of dropping them from the listing.
type ProductWithStock struct {
	model.Product
	TotalStock int `gorm:"column:total_stock"`
}

// ReportRepository serves the read-only aggregate queries. The summed stock
// is annotated in the same round trip that returns the products, and the sales
// summary never issues a second query per product.
type ReportRepository interface {
	ListWithStock(ctx context.Context) ([]ProductWithStock, error)
	ListWithLowStock(ctx context.Context, threshold int) ([]ProductWithStock, error)
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.Product, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) ListWithStock(ctx context.Context) ([]ProductWithStock, error) {
	var rows []ProductWithStock
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("products.*, COALESCE(SUM(inventories.current_stock), 0) AS total_stock").
		Joins("LEFT JOIN inventories ON inventories.product_id = products.id").
		Group("products.id").
		Order("products.registration_date asc").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ListWithLowStock(ctx context.Context, threshold int) ([]ProductWithStock, error) {
	var rows []ProductWithStock
	// Threshold is inclusive, mirroring the inventory low-stock filter
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("products.*, COALESCE(SUM(inventories.current_stock), 0) AS total_stock").
		Joins("LEFT JOIN inventories ON inventories.product_id = products.id").
		Group("products.id").
		Having("COALESCE(SUM(inventories.current_stock), 0) <= ?", threshold).
		Order("total_stock asc").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("sale_price >= ? AND sale_price <= ?", min, max).
		Order("sale_price asc").Find(&products).Error
	return products, err
}
