package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreatePurchaseRequest struct {
	SupplierID   string                `json:"supplier_id"   validate:"required,uuid"`
	Tax          *decimal.Decimal      `json:"tax"           validate:"omitempty,min=0"`
	State        string                `json:"state"         validate:"omitempty,oneof=pending completed cancelled"`
	DeliveryDate *string               `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Items        []PurchaseItemRequest `json:"items"         validate:"required,min=1,dive"`
}

type UpdatePurchaseRequest struct {
	// State changes are unconstrained: any of the three values may be set
	// regardless of the current one.
	State        *string          `json:"state"         validate:"omitempty,oneof=pending completed cancelled"`
	Tax          *decimal.Decimal `json:"tax"           validate:"omitempty,min=0"`
	DeliveryDate *string          `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

type PurchaseItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type PurchaseResponse struct {
	ID           uuid.UUID              `json:"id"`
	SupplierID   uuid.UUID              `json:"supplier_id"`
	Tax          *decimal.Decimal       `json:"tax"`
	State        string                 `json:"state"`
	PurchaseDate string                 `json:"purchase_date"`
	DeliveryDate *string                `json:"delivery_date"`
	Items        []PurchaseItemResponse `json:"items"`
	Total        decimal.Decimal        `json:"total"`
}

// PurchaseFilter is bound from the query string of GET /v1/purchases.
type PurchaseFilter struct {
	SupplierID string `form:"supplier_id" validate:"omitempty,uuid"`
	State      string `form:"state"       validate:"omitempty,oneof=pending completed cancelled"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// SendPurchaseOrderRequest mails the generated order PDF to the given
// address (suppliers have no stored email, only a URL).
type SendPurchaseOrderRequest struct {
	ToEmail string `json:"to_email" validate:"required,email"`
}
