package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem pricing fields are a display cache recomputed from the live
// product on every cart read; the checkout snapshot never trusts them.
type CartItem struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Cart      *Cart    `gorm:"foreignKey:CartID" json:"-"`
	CartID    string   `gorm:"size:36;index;uniqueIndex:idx_cart_product" json:"cart_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductID string   `gorm:"size:36;index;uniqueIndex:idx_cart_product" json:"product_id"`
	Qty       int      `gorm:"not null" json:"qty"`

	BasePrice      decimal.Decimal `gorm:"type:decimal(16,2);" json:"base_price"`
	FinalPriceUnit decimal.Decimal `gorm:"type:decimal(16,2);" json:"final_price_unit"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);" json:"discount_amount"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(16,2);" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
