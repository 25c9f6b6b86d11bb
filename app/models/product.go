package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshacres/go-farmstore/app/utils/calc"
)

type Product struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FarmID          string          `gorm:"size:36;index" json:"farm_id"`
	Farm            FarmProfile     `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Slug            string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string          `gorm:"type:text" json:"description"`
	Image           string          `gorm:"size:255" json:"image"`
	Price           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.00" json:"discount_percent"`
	IsOnSale        bool            `gorm:"default:false" json:"is_on_sale"`
	SaleStartDate   *time.Time      `json:"sale_start_date,omitempty"`
	SaleEndDate     *time.Time      `json:"sale_end_date,omitempty"`

	// SalePrice is a denormalized cache of the effective price, refreshed by
	// the catalog write path whenever price/discount/sale fields change.
	// calc.EffectivePrice stays the ground truth.
	SalePrice decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"sale_price"`

	Nutrition *Nutrition `gorm:"foreignKey:ProductID" json:"nutrition,omitempty"`
	Reviews   []Review   `json:"reviews,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Pricing returns the inputs the price engine needs to quote this product.
func (p *Product) Pricing() calc.ProductPricing {
	return calc.ProductPricing{
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		IsOnSale:        p.IsOnSale,
		SaleStartDate:   p.SaleStartDate,
		SaleEndDate:     p.SaleEndDate,
	}
}
