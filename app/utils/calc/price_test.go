package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalAt = time.Date(2026, time.June, 14, 12, 0, 0, 0, time.UTC)

func window(start, end time.Time) (*time.Time, *time.Time) {
	return &start, &end
}

func TestEffectivePriceNotOnSale(t *testing.T) {
	p := ProductPricing{
		Price:           decimal.RequireFromString("12.50"),
		DiscountPercent: decimal.NewFromInt(20),
		IsOnSale:        false,
	}

	quote := EffectivePrice(p, evalAt)
	assert.False(t, quote.IsDiscountActive)
	assert.True(t, quote.EffectivePrice.Equal(p.Price))
	assert.True(t, quote.OriginalPrice.Equal(p.Price))
	assert.True(t, quote.DiscountPercent.IsZero(), "inactive quote reports zero percent")
}

func TestEffectivePriceZeroPercent(t *testing.T) {
	start, end := window(evalAt.Add(-time.Hour), evalAt.Add(time.Hour))
	p := ProductPricing{
		Price:           decimal.RequireFromString("12.50"),
		DiscountPercent: decimal.Zero,
		IsOnSale:        true,
		SaleStartDate:   start,
		SaleEndDate:     end,
	}

	quote := EffectivePrice(p, evalAt)
	assert.False(t, quote.IsDiscountActive, "zero percent never discounts, even inside the window")
	assert.True(t, quote.EffectivePrice.Equal(p.Price))
}

func TestEffectivePriceActiveDiscount(t *testing.T) {
	start, end := window(evalAt.Add(-time.Hour), evalAt.Add(time.Hour))
	p := ProductPricing{
		Price:           decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(20),
		IsOnSale:        true,
		SaleStartDate:   start,
		SaleEndDate:     end,
	}

	quote := EffectivePrice(p, evalAt)
	require.True(t, quote.IsDiscountActive)
	assert.True(t, quote.EffectivePrice.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, quote.OriginalPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, quote.DiscountPercent.Equal(decimal.NewFromInt(20)))
}

func TestEffectivePriceWindowBounds(t *testing.T) {
	start := evalAt
	end := evalAt.Add(48 * time.Hour)

	p := ProductPricing{
		Price:           decimal.NewFromInt(10),
		DiscountPercent: decimal.NewFromInt(50),
		IsOnSale:        true,
		SaleStartDate:   &start,
		SaleEndDate:     &end,
	}

	cases := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside window", start.Add(time.Hour), true},
		{"exactly at end", end, true},
		{"after end", end.Add(time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := EffectivePrice(p, tc.now)
			assert.Equal(t, tc.active, quote.IsDiscountActive)
		})
	}
}

func TestEffectivePriceOpenEndedWindows(t *testing.T) {
	base := ProductPricing{
		Price:           decimal.NewFromInt(10),
		DiscountPercent: decimal.NewFromInt(10),
		IsOnSale:        true,
	}

	t.Run("no bounds at all", func(t *testing.T) {
		quote := EffectivePrice(base, evalAt)
		assert.True(t, quote.IsDiscountActive)
	})

	t.Run("only a start date", func(t *testing.T) {
		p := base
		start := evalAt.Add(-time.Hour)
		p.SaleStartDate = &start
		assert.True(t, EffectivePrice(p, evalAt).IsDiscountActive)

		future := evalAt.Add(time.Hour)
		p.SaleStartDate = &future
		assert.False(t, EffectivePrice(p, evalAt).IsDiscountActive)
	})

	t.Run("only an end date", func(t *testing.T) {
		p := base
		end := evalAt.Add(time.Hour)
		p.SaleEndDate = &end
		assert.True(t, EffectivePrice(p, evalAt).IsDiscountActive)

		past := evalAt.Add(-time.Hour)
		p.SaleEndDate = &past
		assert.False(t, EffectivePrice(p, evalAt).IsDiscountActive)
	})
}

func TestEffectivePriceRounding(t *testing.T) {
	cases := []struct {
		price   string
		percent int64
		want    string
	}{
		{"19.99", 15, "16.99"}, // 16.9915 rounds down
		{"10.05", 50, "5.03"},  // 5.025 rounds half away from zero
		{"0.01", 50, "0.01"},   // 0.005 rounds up
		{"100.00", 33, "67.00"},
	}

	for _, tc := range cases {
		p := ProductPricing{
			Price:           decimal.RequireFromString(tc.price),
			DiscountPercent: decimal.NewFromInt(tc.percent),
			IsOnSale:        true,
		}
		quote := EffectivePrice(p, evalAt)
		assert.True(t, quote.EffectivePrice.Equal(decimal.RequireFromString(tc.want)),
			"%s at %d%% = %s, want %s", tc.price, tc.percent, quote.EffectivePrice, tc.want)
	}
}

func TestEffectivePriceDeterministic(t *testing.T) {
	start, end := window(evalAt.Add(-time.Hour), evalAt.Add(time.Hour))
	p := ProductPricing{
		Price:           decimal.RequireFromString("7.77"),
		DiscountPercent: decimal.NewFromInt(15),
		IsOnSale:        true,
		SaleStartDate:   start,
		SaleEndDate:     end,
	}

	first := EffectivePrice(p, evalAt)
	second := EffectivePrice(p, evalAt)
	assert.True(t, first.EffectivePrice.Equal(second.EffectivePrice))
	assert.Equal(t, first.IsDiscountActive, second.IsDiscountActive)
}

func TestLineSubtotal(t *testing.T) {
	quote := PriceQuote{EffectivePrice: decimal.RequireFromString("45.00")}
	assert.True(t, LineSubtotal(quote, 3).Equal(decimal.RequireFromString("135.00")))
	assert.True(t, LineSubtotal(quote, 0).IsZero())
}

func TestDiscountAmountPerUnit(t *testing.T) {
	active := PriceQuote{
		IsDiscountActive: true,
		OriginalPrice:    decimal.NewFromInt(50),
		EffectivePrice:   decimal.NewFromInt(45),
	}
	assert.True(t, DiscountAmountPerUnit(active).Equal(decimal.NewFromInt(5)))

	inactive := PriceQuote{
		IsDiscountActive: false,
		OriginalPrice:    decimal.NewFromInt(50),
		EffectivePrice:   decimal.NewFromInt(50),
	}
	assert.True(t, DiscountAmountPerUnit(inactive).IsZero())
}
