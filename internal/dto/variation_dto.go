package dto

import "github.com/google/uuid"

type CreateVariationRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Category  string `json:"category"   validate:"required,oneof=size color"`
	Name      string `json:"name"       validate:"required,max=120"`
	State     string `json:"state"      validate:"omitempty,oneof=available unavailable removed"`
}

type UpdateVariationRequest struct {
	Category *string `json:"category" validate:"omitempty,oneof=size color"`
	Name     *string `json:"name"     validate:"omitempty,max=120"`
	State    *string `json:"state"    validate:"omitempty,oneof=available unavailable removed"`
}

type VariationResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
}

// VariationFilter is bound from the query string of GET /v1/variations.
type VariationFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	State     string `form:"state"      validate:"omitempty,oneof=available unavailable removed"`
}

// VariationCategoryCount is one row of the group-by-category summary.
type VariationCategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
