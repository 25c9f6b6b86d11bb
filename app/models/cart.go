package models

import "github.com/shopspring/decimal"

// Cart belongs either to a logged-in user (UserID set) or to a guest
// session; the cart ID doubles as the guest session cart key.
type Cart struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string `gorm:"size:36;index"`
	User      User   `gorm:"foreignKey:UserID"`
	CartItems []CartItem

	BaseTotalPrice decimal.Decimal `gorm:"type:decimal(16,2);"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(16,2);"`
}
