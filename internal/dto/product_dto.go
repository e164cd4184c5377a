package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	CategoryID    string          `json:"category_id"    validate:"required,uuid"`
	SupplierID    *string         `json:"supplier_id"    validate:"omitempty,uuid"`
	Description   string          `json:"description"    validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	SalePrice     decimal.Decimal `json:"sale_price"     validate:"min=0"`
}

type UpdateProductRequest struct {
	CategoryID    *string          `json:"category_id"    validate:"omitempty,uuid"`
	SupplierID    *string          `json:"supplier_id"    validate:"omitempty,uuid"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,min=0"`
	SalePrice     *decimal.Decimal `json:"sale_price"     validate:"omitempty,min=0"`
}

type ProductResponse struct {
	ID               uuid.UUID           `json:"id"`
	CategoryID       uuid.UUID           `json:"category_id"`
	SupplierID       *uuid.UUID          `json:"supplier_id"`
	Description      string              `json:"description"`
	PurchasePrice    decimal.Decimal     `json:"purchase_price"`
	SalePrice        decimal.Decimal     `json:"sale_price"`
	Slug             string              `json:"slug"`
	RegistrationDate string              `json:"registration_date"`
	ImagePath        *string             `json:"image_path"`
	Variations       []VariationResponse `json:"variations,omitempty"`
}

// ProductFilter is bound from the query string of GET /v1/products.
// MinPrice/MaxPrice bound the sale price inclusively on both ends.
type ProductFilter struct {
	CategoryID  string           `form:"category_id"  validate:"omitempty,uuid"`
	SupplierID  string           `form:"supplier_id"  validate:"omitempty,uuid"`
	VariationID string           `form:"variation_id" validate:"omitempty,uuid"`
	MinPrice    *decimal.Decimal `form:"min_price"`
	MaxPrice    *decimal.Decimal `form:"max_price"`
	Page        int              `form:"page,default=1"   validate:"min=1"`
	Limit       int              `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type SetProductIssueRequest struct {
	IssueType string  `json:"issue_type" validate:"required,oneof=default damaged"`
	Notes     *string `json:"notes"`
}

type ProductIssueResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	IssueType string    `json:"issue_type"`
	Notes     *string   `json:"notes"`
}
