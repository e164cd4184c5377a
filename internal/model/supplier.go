package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor products are purchased from.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"uniqueIndex;not null"`
	URL          *string
	SupplierType *string // e.g. "mayorista", "minorista"
	Description  *string
	ImagePath    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Products  []Product  `gorm:"foreignKey:SupplierID"`
	Purchases []Purchase `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "suppliers" }
