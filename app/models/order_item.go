package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem freezes the price the customer saw at checkout. The *AtTime
// fields never change afterwards, even when the product row does.
type OrderItem struct {
	ID          string  `gorm:"primaryKey;type:varchar(36);not null;uniqueIndex" json:"id"`
	OrderID     string  `gorm:"type:varchar(36);not null;index" json:"order_id"`
	Order       Order   `gorm:"foreignKey:OrderID;references:ID" json:"-"`
	ProductID   string  `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product     Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
	ProductName string  `gorm:"type:varchar(255);not null" json:"product_name"`
	Qty         int     `gorm:"not null" json:"qty"`

	PriceAtTime           decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price_at_time"`
	DiscountedPriceAtTime decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"discounted_price_at_time"`
	IsOnSaleAtTime        bool                `gorm:"not null" json:"is_on_sale_at_time"`
	DiscountPercentAtTime decimal.Decimal     `gorm:"type:decimal(5,2);not null" json:"discount_percent_at_time"`
	Subtotal              decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
