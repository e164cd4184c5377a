package dto

import "github.com/google/uuid"

type CreateInventoryRequest struct {
	ProductID    string `json:"product_id"    validate:"required,uuid"`
	CurrentStock int    `json:"current_stock" validate:"min=0"`
	Active       *bool  `json:"active"`
}

type UpdateInventoryRequest struct {
	CurrentStock *int  `json:"current_stock" validate:"omitempty,min=0"`
	Active       *bool `json:"active"`
}

type InventoryResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	CurrentStock     int       `json:"current_stock"`
	Active           bool      `json:"active"`
	ModificationDate string    `json:"modification_date"`
}

// StockResponse is the single-product stock lookup: the first inventory
// row's stock, or zero when the product has none.
type StockResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int       `json:"stock"`
}
