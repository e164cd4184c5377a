package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. CategoryID is required (RESTRICT on delete),
// SupplierID is optional (PROTECT on delete). Slug is derived once from
// Description at creation and never regenerated. Editing the description
// later must not change it.
type Product struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierID    *uuid.UUID `gorm:"type:uuid;index"`
	Description   string     `gorm:"not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Slug          string          `gorm:"uniqueIndex;not null"`
	// RegistrationDate is set at creation and immutable afterwards.
	RegistrationDate time.Time `gorm:"autoCreateTime"`
	ImagePath        *string

	UpdatedAt time.Time

	Category    *Category    `gorm:"foreignKey:CategoryID"`
	Supplier    *Supplier    `gorm:"foreignKey:SupplierID"`
	Variations  []Variation  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Inventories []Inventory  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Issue       *ProductIssue `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }
