package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product references its gemstones and materials by id lists stored as JSON
// arrays. The catalog is maintained by an external admin process, so ids in
// those lists may point to rows that no longer exist.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	DiscountPrice *float64       `json:"discountPrice,omitempty"`
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"categoryId"`
	Featured      bool           `gorm:"default:false;index" json:"featured"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	GemstoneIDs   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"gemstoneIds"`
	MaterialIDs   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"materialIds"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// GemstoneIDList decodes the stored gemstone id array. A malformed document is
// a data-integrity error and is returned to the caller, not swallowed.
func (p *Product) GemstoneIDList() ([]string, error) {
	return decodeIDList(p.GemstoneIDs)
}

// MaterialIDList decodes the stored material id array.
func (p *Product) MaterialIDList() ([]string, error) {
	return decodeIDList(p.MaterialIDs)
}

func decodeIDList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// EncodeIDList builds the JSON array column value for a set of entity ids.
func EncodeIDList(ids ...uuid.UUID) datatypes.JSON {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	out, _ := json.Marshal(strs)
	return datatypes.JSON(out)
}
