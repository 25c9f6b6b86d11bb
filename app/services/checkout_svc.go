package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

var (
	// ErrEmptyCart means the cart had no line items at checkout time.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderPersist wraps a failure of the atomic order write. Nothing was
	// committed, so the caller may retry the whole checkout.
	ErrOrderPersist = errors.New("failed to persist order")
)

// ProductNotFoundError means a cart line references a product that left the
// catalog between cart-add and checkout. The whole checkout aborts.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InvalidAmountError means the tendered cash does not cover the order total.
type InvalidAmountError struct {
	Required decimal.Decimal
	Given    decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("tendered amount %s is below order total %s", e.Given.StringFixed(2), e.Required.StringFixed(2))
}

// CheckoutService turns a cart into a durable, price-frozen order. Prices
// are snapshotted onto the order items so history stays accurate after the
// catalog changes.
type CheckoutService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	orderRepo    repositories.OrderRepository
	now          func() time.Time
}

func NewCheckoutService(
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// PlaceOrder loads the cart, prices every line with the live product data at
// one shared instant, and writes the order, its items and the cash payment
// atomically. Products are not locked or re-validated between read and
// write: the snapshot records the price as observed at checkout, which is
// the whole point.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, cartID, paymentMethod string, amount decimal.Decimal, reference string) (*models.Order, error) {
	// One instant prices the entire order.
	checkoutAt := s.now()

	items, err := s.cartItemRepo.GetByCartID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero

	for _, cartItem := range items {
		product, err := s.productRepo.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", cartItem.ProductID, err)
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: cartItem.ProductID}
		}

		quote := calc.EffectivePrice(product.Pricing(), checkoutAt)
		subtotal := calc.LineSubtotal(quote, cartItem.Qty)
		total = total.Add(subtotal)

		discountedPrice := decimal.NullDecimal{}
		if quote.IsDiscountActive {
			discountedPrice = decimal.NullDecimal{Decimal: quote.EffectivePrice, Valid: true}
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:             product.ID,
			ProductName:           product.Name,
			Qty:                   cartItem.Qty,
			PriceAtTime:           quote.OriginalPrice,
			DiscountedPriceAtTime: discountedPrice,
			IsOnSaleAtTime:        quote.IsDiscountActive,
			DiscountPercentAtTime: quote.DiscountPercent,
			Subtotal:              subtotal,
		})
	}

	if amount.LessThan(total) {
		return nil, &InvalidAmountError{Required: total, Given: amount}
	}

	orderCode := fmt.Sprintf("INV-%s-%s", checkoutAt.Format("20060102"), uuid.New().String()[:8])
	order := &models.Order{
		UserID:           userID,
		OrderCode:        orderCode,
		OrderDate:        checkoutAt,
		OrderItems:       orderItems,
		Amount:           amount,
		Total:            total,
		PaymentMethod:    paymentMethod,
		PaymentReference: reference,
		Status:           models.OrderStatusComplete,
		Payment: &models.Payment{
			Number:    orderCode,
			Amount:    amount,
			Method:    paymentMethod,
			Reference: reference,
			Status:    models.PaymentStatusPaid,
		},
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderPersist, err)
	}

	// Post-commit: the order stands even if the stale cart survives.
	if err := s.cartItemRepo.ClearCartItems(ctx, cartID); err != nil {
		log.Printf("PlaceOrder: failed to clear cart %s after order %s: %v", cartID, order.OrderCode, err)
	} else if err := s.cartRepo.UpdateCartSummary(ctx, cartID); err != nil {
		log.Printf("PlaceOrder: failed to reset cart summary %s after order %s: %v", cartID, order.OrderCode, err)
	}

	return order, nil
}
