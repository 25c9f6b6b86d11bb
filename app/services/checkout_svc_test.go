package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshacres/go-farmstore/app/models"
)

var checkoutInstant = time.Date(2026, time.June, 14, 12, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	svc          *CheckoutService
	cartRepo     *mockCartRepo
	cartItemRepo *mockCartItemRepo
	productRepo  *mockProductRepo
	orderRepo    *mockOrderRepo
}

func newCheckoutFixture(products ...*models.Product) *checkoutFixture {
	cartItemRepo := &mockCartItemRepo{}
	cartRepo := newMockCartRepo(cartItemRepo)
	productRepo := newMockProductRepo(products...)
	orderRepo := &mockOrderRepo{}

	svc := NewCheckoutService(cartRepo, cartItemRepo, productRepo, orderRepo)
	svc.now = func() time.Time { return checkoutInstant }

	return &checkoutFixture{
		svc:          svc,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

func saleProduct(id string, price string, percent int64) *models.Product {
	start := checkoutInstant.Add(-24 * time.Hour)
	end := checkoutInstant.Add(24 * time.Hour)
	return &models.Product{
		ID:              id,
		Name:            "Heirloom Tomatoes",
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.NewFromInt(percent),
		IsOnSale:        true,
		SaleStartDate:   &start,
		SaleEndDate:     &end,
	}
}

func plainProduct(id string, price string) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  "Sweet Corn",
		Price: decimal.RequireFromString(price),
	}
}

func (f *checkoutFixture) addCartLine(cartID, productID string, qty int) {
	_ = f.cartItemRepo.Add(context.Background(), &models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Qty:       qty,
	})
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(100), "")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, f.orderRepo.created)
}

func TestPlaceOrderProductVanished(t *testing.T) {
	f := newCheckoutFixture(plainProduct("p-1", "4.50"))
	f.addCartLine("cart-1", "p-1", 1)
	f.addCartLine("cart-1", "p-gone", 2)

	_, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(100), "")

	var pnf *ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "p-gone", pnf.ProductID)
	assert.Nil(t, f.orderRepo.created, "a failed checkout must not persist an order")
	items, _ := f.cartItemRepo.GetByCartID(context.Background(), "cart-1")
	assert.Len(t, items, 2, "a failed checkout must leave the cart alone")
}

func TestPlaceOrderInsufficientAmount(t *testing.T) {
	f := newCheckoutFixture(saleProduct("p-1", "50.00", 10))
	f.addCartLine("cart-1", "p-1", 3)

	_, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(100), "")

	var amtErr *InvalidAmountError
	require.ErrorAs(t, err, &amtErr)
	assert.True(t, amtErr.Required.Equal(decimal.RequireFromString("135.00")), "required = %s", amtErr.Required)
	assert.True(t, amtErr.Given.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, f.orderRepo.created)
}

func TestPlaceOrderSnapshotsDiscountedLine(t *testing.T) {
	f := newCheckoutFixture(saleProduct("p-1", "50.00", 10))
	f.addCartLine("cart-1", "p-1", 3)

	order, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(150), "till-7")
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.OrderItems, 1)
	item := order.OrderItems[0]
	assert.Equal(t, "p-1", item.ProductID)
	assert.Equal(t, "Heirloom Tomatoes", item.ProductName)
	assert.Equal(t, 3, item.Qty)
	assert.True(t, item.PriceAtTime.Equal(decimal.RequireFromString("50.00")))
	require.True(t, item.DiscountedPriceAtTime.Valid)
	assert.True(t, item.DiscountedPriceAtTime.Decimal.Equal(decimal.RequireFromString("45.00")))
	assert.True(t, item.IsOnSaleAtTime)
	assert.True(t, item.DiscountPercentAtTime.Equal(decimal.NewFromInt(10)))
	assert.True(t, item.Subtotal.Equal(decimal.RequireFromString("135.00")))

	assert.True(t, order.Total.Equal(decimal.RequireFromString("135.00")))
	assert.True(t, order.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, models.OrderStatusComplete, order.Status)
	assert.Equal(t, checkoutInstant, order.OrderDate)
	assert.Contains(t, order.OrderCode, "INV-20260614-")

	require.NotNil(t, order.Payment)
	assert.Equal(t, models.PaymentMethodCash, order.Payment.Method)
	assert.Equal(t, models.PaymentStatusPaid, order.Payment.Status)
	assert.Equal(t, "till-7", order.Payment.Reference)
}

func TestPlaceOrderMixedLines(t *testing.T) {
	f := newCheckoutFixture(saleProduct("p-sale", "20.00", 25), plainProduct("p-plain", "4.50"))
	f.addCartLine("cart-1", "p-sale", 2)
	f.addCartLine("cart-1", "p-plain", 4)

	order, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(48), "")
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 2)

	saleLine := order.OrderItems[0]
	assert.True(t, saleLine.DiscountedPriceAtTime.Valid)
	assert.True(t, saleLine.DiscountedPriceAtTime.Decimal.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, saleLine.Subtotal.Equal(decimal.RequireFromString("30.00")))

	plainLine := order.OrderItems[1]
	assert.False(t, plainLine.DiscountedPriceAtTime.Valid, "no active discount, snapshot stays null")
	assert.False(t, plainLine.IsOnSaleAtTime)
	assert.True(t, plainLine.DiscountPercentAtTime.IsZero())
	assert.True(t, plainLine.Subtotal.Equal(decimal.RequireFromString("18.00")))

	assert.True(t, order.Total.Equal(decimal.RequireFromString("48.00")), "total = sum of line subtotals")
}

func TestPlaceOrderOutsideSaleWindow(t *testing.T) {
	product := saleProduct("p-1", "50.00", 10)
	past := checkoutInstant.Add(-48 * time.Hour)
	product.SaleEndDate = &past

	f := newCheckoutFixture(product)
	f.addCartLine("cart-1", "p-1", 1)

	order, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(50), "")
	require.NoError(t, err)

	item := order.OrderItems[0]
	assert.False(t, item.IsOnSaleAtTime, "flag alone is not enough, the window decides")
	assert.False(t, item.DiscountedPriceAtTime.Valid)
	assert.True(t, item.Subtotal.Equal(decimal.RequireFromString("50.00")))
}

func TestPlaceOrderPersistFailure(t *testing.T) {
	f := newCheckoutFixture(plainProduct("p-1", "4.50"))
	f.addCartLine("cart-1", "p-1", 1)
	f.orderRepo.createErr = errors.New("deadlock found")

	_, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(5), "")
	require.ErrorIs(t, err, ErrOrderPersist)

	items, _ := f.cartItemRepo.GetByCartID(context.Background(), "cart-1")
	assert.Len(t, items, 1, "cart survives a failed order write")
}

func TestPlaceOrderCartClearFailureIsNonFatal(t *testing.T) {
	f := newCheckoutFixture(plainProduct("p-1", "4.50"))
	f.addCartLine("cart-1", "p-1", 1)
	f.cartItemRepo.clearErr = errors.New("lock wait timeout")

	order, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(5), "")
	require.NoError(t, err, "the order stands even when the cart cleanup fails")
	assert.NotNil(t, order)
	assert.NotNil(t, f.orderRepo.created)
}

func TestPlaceOrderClearsCart(t *testing.T) {
	f := newCheckoutFixture(plainProduct("p-1", "4.50"))
	f.addCartLine("cart-1", "p-1", 2)

	_, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(9), "")
	require.NoError(t, err)

	items, _ := f.cartItemRepo.GetByCartID(context.Background(), "cart-1")
	assert.Empty(t, items)
	assert.Contains(t, f.cartRepo.summaries, "cart-1")
}

func TestOrderSnapshotSurvivesCatalogChange(t *testing.T) {
	product := saleProduct("p-1", "50.00", 10)
	f := newCheckoutFixture(product)
	f.addCartLine("cart-1", "p-1", 1)

	order, err := f.svc.PlaceOrder(context.Background(), "user-1", "cart-1", models.PaymentMethodCash, decimal.NewFromInt(45), "")
	require.NoError(t, err)

	product.Price = decimal.RequireFromString("99.99")
	product.IsOnSale = false

	stored := f.orderRepo.created
	require.NotNil(t, stored)
	item := stored.OrderItems[0]
	assert.True(t, item.PriceAtTime.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, item.DiscountedPriceAtTime.Decimal.Equal(decimal.RequireFromString("45.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("45.00")))
}
