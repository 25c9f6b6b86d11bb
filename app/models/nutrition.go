package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Nutrition holds the per-product nutrition facts. At most one row per
// product; the optional fields stay NULL when the farm did not supply them.
type Nutrition struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string `gorm:"size:36;not null;uniqueIndex" json:"product_id"`

	Calories decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"calories"`
	Protein  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"protein"`
	Fat      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fat"`

	Carbohydrates decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"carbohydrates"`
	Fiber         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"fiber"`
	Sugar         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"sugar"`
	Sodium        decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"sodium"`
	Cholesterol   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"cholesterol"`

	// Vitamins keeps the farm-supplied order.
	Vitamins []string `gorm:"serializer:json" json:"vitamins"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Nutrition) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
