package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the product category forest. ParentID is nil for
// roots. Level is the materialized depth (root = 0) and is maintained by the
// repository on insert/move/delete; never written by callers directly.
// Sibling order is lexicographic by name; every query that returns
// categories orders by name so callers never re-sort.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string     `gorm:"index;not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Level    int        `gorm:"not null;default:0;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Parent   *Category  `gorm:"foreignKey:ParentID"`
	Children []Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }
