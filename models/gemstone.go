package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gemstone struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Color         string         `json:"color"`
	Carat         float64        `gorm:"default:0" json:"carat"`
	Clarity       string         `json:"clarity,omitempty"`
	Cut           string         `json:"cut,omitempty"`
	Origin        string         `json:"origin,omitempty"`
	Certification string         `json:"certification,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Gemstone) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
