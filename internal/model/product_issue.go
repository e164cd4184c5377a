package model

import (
	"time"

	"github.com/google/uuid"
)

// Issue types.
const (
	IssueTypeDefault = "default"
	IssueTypeDamaged = "damaged"
)

// ProductIssue records a problem with a product (one row per product at
// most). Cascades with the product.
type ProductIssue struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	IssueType string    `gorm:"type:varchar(20);not null;default:'default'"`
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (ProductIssue) TableName() string { return "product_issues" }
