package dto

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name     string  `json:"name"      validate:"required,max=100"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}

type MoveCategoryRequest struct {
	// NewParentID nil means "make it a root".
	NewParentID *string `json:"new_parent_id" validate:"omitempty,uuid"`
}

type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
	Level    int        `json:"level"`
}

// CategoryNode is CategoryResponse plus nested children, for the tree view.
// Children are ordered by name at every level.
type CategoryNode struct {
	CategoryResponse
	Children []CategoryNode `json:"children"`
}

// CategoryFilter is bound from the query string of GET /v1/categories.
type CategoryFilter struct {
	Level *int   `form:"level"`
	Name  string `form:"name"` // case-insensitive substring match
}
