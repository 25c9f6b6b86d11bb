package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ProductPricing carries the product fields that decide its current price.
type ProductPricing struct {
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	IsOnSale        bool
	SaleStartDate   *time.Time
	SaleEndDate     *time.Time
}

// PriceQuote is the result of evaluating a product's price at one instant.
type PriceQuote struct {
	IsDiscountActive bool
	EffectivePrice   decimal.Decimal
	OriginalPrice    decimal.Decimal
	DiscountPercent  decimal.Decimal
}

// EffectivePrice computes the price a customer pays for the product at the
// given instant. Every discount calculation in the app goes through here:
// catalog listing, product detail, cart totals, the sale-price cache and the
// checkout snapshot all call this one function so the numbers cannot drift.
//
// A discount is active iff the product is flagged on sale, the percent is
// positive and the instant falls inside the sale window. The window is
// inclusive on both ends; a nil bound is open-ended. The caller supplies
// now so one checkout prices every line at the same instant.
//
// Discounted prices round to 2 decimals, half away from zero. All math is
// fixed-point decimal.
func EffectivePrice(p ProductPricing, now time.Time) PriceQuote {
	if !discountActive(p, now) {
		return PriceQuote{
			IsDiscountActive: false,
			EffectivePrice:   p.Price,
			OriginalPrice:    p.Price,
			DiscountPercent:  decimal.Zero,
		}
	}

	factor := decimal.NewFromInt(1).Sub(p.DiscountPercent.Div(oneHundred))
	discounted := p.Price.Mul(factor).Round(2)

	return PriceQuote{
		IsDiscountActive: true,
		EffectivePrice:   discounted,
		OriginalPrice:    p.Price,
		DiscountPercent:  p.DiscountPercent,
	}
}

func discountActive(p ProductPricing, now time.Time) bool {
	if !p.IsOnSale || !p.DiscountPercent.IsPositive() {
		return false
	}
	if p.SaleStartDate != nil && now.Before(*p.SaleStartDate) {
		return false
	}
	if p.SaleEndDate != nil && now.After(*p.SaleEndDate) {
		return false
	}
	return true
}

// LineSubtotal is the effective unit price times quantity.
func LineSubtotal(quote PriceQuote, qty int) decimal.Decimal {
	return quote.EffectivePrice.Mul(decimal.NewFromInt(int64(qty)))
}

// DiscountAmountPerUnit is how much one unit is reduced by the active
// discount; zero when no discount applies.
func DiscountAmountPerUnit(quote PriceQuote) decimal.Decimal {
	if !quote.IsDiscountActive {
		return decimal.Zero
	}
	return quote.OriginalPrice.Sub(quote.EffectivePrice)
}
