package service

import (
	"context"
	"encoding/json"
	"time"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const salesSummaryCacheTTL = time.Minute

// ReportService computes the read-only derived views over catalog + stock.
// Summed stock here differs from the single-record lookup in
// InventoryService on purpose: reports aggregate across every inventory
// row of a product.
type ReportService interface {
	ProductsWithTotalStock(ctx context.Context) ([]dto.ProductStockResponse, error)
	ProductsWithLowStock(ctx context.Context, threshold int) ([]dto.ProductStockResponse, error)
	SalesSummary(ctx context.Context) (*dto.SalesSummaryResponse, error)
	ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error)
}

type reportService struct {
	repo repository.ReportRepository
	rdb  *redis.Client
}

func NewReportService(repo repository.ReportRepository, rdb *redis.Client) ReportService {
	return &reportService{repo: repo, rdb: rdb}
}

func mapProductStock(row repository.ProductWithStock) dto.ProductStockResponse {
	return dto.ProductStockResponse{
		ID:            row.ID,
		Description:   row.Description,
		Slug:          row.Slug,
		PurchasePrice: row.PurchasePrice,
		SalePrice:     row.SalePrice,
		TotalStock:    row.TotalStock,
	}
}

func (s *reportService) ProductsWithTotalStock(ctx context.Context) ([]dto.ProductStockResponse, error) {
	rows, err := s.repo.ListWithStock(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductStockResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapProductStock(row))
	}
	return result, nil
}

func (s *reportService) ProductsWithLowStock(ctx context.Context, threshold int) ([]dto.ProductStockResponse, error) {
	rows, err := s.repo.ListWithLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductStockResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapProductStock(row))
	}
	return result, nil
}

// SalesSummary folds total sales and gains over the same annotated rows the
// stock listing uses: one query, one pass, zero totals when the catalog is
// empty. A short-TTL redis cache sits in front; correctness never depends
// on it (errors fall through to the query).
func (s *reportService) SalesSummary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	const cacheKey = "reports:sales_summary"

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.SalesSummaryResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	rows, err := s.repo.ListWithStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := ComputeSalesSummary(rows)

	if s.rdb != nil {
		// Best effort, cache write failures are ignored
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, salesSummaryCacheTTL).Err()
		}
	}
	return resp, nil
}

// ComputeSalesSummary is the pure aggregation:
//
//	total_sales = Σ sale_price × summed_stock
//	total_gains = Σ (sale_price − purchase_price) × summed_stock
func ComputeSalesSummary(rows []repository.ProductWithStock) *dto.SalesSummaryResponse {
	totalSales := decimal.Zero
	totalGains := decimal.Zero
	for _, row := range rows {
		stock := decimal.NewFromInt(int64(row.TotalStock))
		totalSales = totalSales.Add(row.SalePrice.Mul(stock))
		totalGains = totalGains.Add(row.SalePrice.Sub(row.PurchasePrice).Mul(stock))
	}
	return &dto.SalesSummaryResponse{TotalSales: totalSales, TotalGains: totalGains}
}

func (s *reportService) ByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	if min.GreaterThan(max) {
		return nil, apierror.Validation("min_price no puede superar max_price")
	}
	products, err := s.repo.ListByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, mapProduct(p))
	}
	return result, nil
}
