package dto

import "github.com/google/uuid"

type CreateSupplierRequest struct {
	Name         string  `json:"name"          validate:"required,max=255"`
	URL          *string `json:"url"           validate:"omitempty,url"`
	SupplierType *string `json:"supplier_type" validate:"omitempty,max=100"`
	Description  *string `json:"description"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"          validate:"omitempty,max=255"`
	URL          *string `json:"url"           validate:"omitempty,url"`
	SupplierType *string `json:"supplier_type" validate:"omitempty,max=100"`
	Description  *string `json:"description"`
}

type SupplierResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	URL          *string   `json:"url"`
	SupplierType *string   `json:"supplier_type"`
	Description  *string   `json:"description"`
	ImagePath    *string   `json:"image_path"`
}
