package model

import (
	"time"

	"github.com/google/uuid"
)

// Variation categories and states.
const (
	VariationCategorySize  = "size"
	VariationCategoryColor = "color"

	VariationStateAvailable   = "available"
	VariationStateUnavailable = "unavailable"
	VariationStateRemoved     = "removed"
)

// Variation is a size/color axis of a product. Rows cascade when the
// product is deleted.
type Variation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category  string    `gorm:"type:varchar(20);not null;default:'size'"`
	Name      string    `gorm:"not null"`
	State     string    `gorm:"type:varchar(20);not null;default:'available'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Variation) TableName() string { return "variations" }
