package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase states. Transitions are deliberately unconstrained; any state
// may be set at any time, matching the behavior product owners signed off
// on; see DESIGN.md before tightening this.
const (
	PurchaseStatePending   = "pending"
	PurchaseStateCompleted = "completed"
	PurchaseStateCancelled = "cancelled"
)

// Purchase is an order placed with a supplier. The monetary total is never
// stored: it is recomputed on read from the items' current product prices
// plus tax (nil tax contributes zero).
type Purchase struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Tax        *decimal.Decimal `gorm:"type:decimal(10,2)"`
	State      string           `gorm:"type:varchar(20);not null;default:'completed'"`
	// PurchaseDate is set at creation and immutable afterwards.
	PurchaseDate time.Time  `gorm:"autoCreateTime"`
	DeliveryDate *time.Time `gorm:"type:date"`

	UpdatedAt time.Time

	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

func (Purchase) TableName() string { return "purchases" }

// PurchaseItem is a line of a purchase order. No price is frozen here: the
// subtotal is product.purchase_price × quantity at read time, so historical
// totals drift when the product's purchase price is edited later.
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null;default:1;check:quantity > 0"`

	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (PurchaseItem) TableName() string { return "purchase_items" }
