package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string  `gorm:"size:36;not null;index;uniqueIndex:idx_product_user" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	UserID    string  `gorm:"size:36;not null;uniqueIndex:idx_product_user" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
	Rating    int     `gorm:"not null" json:"rating"`
	Comment   string  `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (rv *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	return
}
