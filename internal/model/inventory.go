package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory tracks the stock of a product. The schema permits several rows
// per product: single-product lookups read the first row by id, while the
// report queries sum across all rows. ModificationDate is stamped by GORM
// on every write; callers never set it.
type Inventory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CurrentStock int       `gorm:"not null;default:0;check:current_stock >= 0"`
	Active       bool      `gorm:"not null;default:true"`
	ModificationDate time.Time `gorm:"autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Inventory) TableName() string { return "inventories" }
