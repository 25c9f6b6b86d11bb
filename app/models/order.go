package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = 1
	OrderStatusComplete  = 2
	OrderStatusCancelled = 3
)

// Order is created once at checkout and immutable afterwards; only Status
// may transition.
type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems []OrderItem `json:"order_items"`
	Payment    *Payment    `json:"payment,omitempty"`

	// Amount is the tendered cash, Total the computed order total.
	Amount           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"amount"`
	Total            decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	PaymentMethod    string          `gorm:"size:50" json:"payment_method"`
	PaymentReference string          `gorm:"size:255" json:"payment_reference"`

	Status int `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
