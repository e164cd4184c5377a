package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStockResponse is a product annotated with its stock summed across
// every inventory row, not just the first (see StockResponse for that).
type ProductStockResponse struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Slug          string          `json:"slug"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	TotalStock    int             `json:"total_stock"`
}

// SalesSummaryResponse totals are zero decimals when no products exist,
// never null.
type SalesSummaryResponse struct {
	TotalSales decimal.Decimal `json:"total_sales"`
	TotalGains decimal.Decimal `json:"total_gains"`
}
