package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FarmProfile struct {
	ID       string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Slug     string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Location string `gorm:"size:255" json:"location"`
	Story    string `gorm:"type:text" json:"story"`
	Image    string `gorm:"size:255" json:"image"`

	Products []Product `gorm:"foreignKey:FarmID" json:"products,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (f *FarmProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
