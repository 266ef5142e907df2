package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory is one-to-one with Product by convention. Products without a row
// get DefaultInventory instead of an error.
type Inventory struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"productId"`
	Quantity          int            `gorm:"default:0" json:"quantity"`
	LowStockThreshold int            `gorm:"default:3" json:"lowStockThreshold"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	DefaultInventoryQuantity = 10
	DefaultLowStockThreshold = 3
)

// DefaultInventory synthesizes the inventory returned for a product that has
// no inventory row. The id is the zero UUID; consumers read only the counts.
func DefaultInventory(productID uuid.UUID) Inventory {
	return Inventory{
		ProductID:         productID,
		Quantity:          DefaultInventoryQuantity,
		LowStockThreshold: DefaultLowStockThreshold,
	}
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
