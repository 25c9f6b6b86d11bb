package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

type CartService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	now          func() time.Time
}

func NewCartService(cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

func (s *CartService) AddItemToCart(ctx context.Context, cartID, userID, productID string, qty int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateCart(ctx, cartID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	existingItem, err := s.cartItemRepo.GetCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	var cartItem *models.CartItem
	if existingItem != nil {
		cartItem = existingItem
		cartItem.Qty += qty
	} else {
		cartItem = &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Qty:       qty,
		}
	}

	s.priceCartItem(cartItem, product)

	if existingItem != nil {
		if err := s.cartItemRepo.Update(ctx, cartItem); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		if err := s.cartItemRepo.Add(ctx, cartItem); err != nil {
			return nil, fmt.Errorf("failed to add new cart item: %w", err)
		}
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}

	return s.cartRepo.GetCartWithItems(ctx, cart.ID)
}

func (s *CartService) UpdateCartItemQty(ctx context.Context, cartID, productID string, newQty int) (*models.Cart, error) {
	if newQty <= 0 {
		return s.RemoveItemFromCart(ctx, cartID, productID)
	}

	item, err := s.cartItemRepo.GetCartAndProduct(ctx, cartID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("cart item not found")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return nil, fmt.Errorf("product not found for cart item")
	}

	item.Qty = newQty
	s.priceCartItem(item, product)

	if err := s.cartItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cartID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}

	return s.cartRepo.GetCartWithItems(ctx, cartID)
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	if err := s.cartItemRepo.Delete(ctx, cartID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove item from cart: %w", err)
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cartID); err != nil {
		log.Printf("RemoveItemFromCart: failed to update summary for cart %s: %v", cartID, err)
	}

	return s.cartRepo.GetCartWithItems(ctx, cartID)
}

// GetCart returns the cart with every line re-priced against the live
// catalog, so an expired or newly started sale shows up without touching
// the stored quantities.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartWithItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, nil
	}

	s.recalculateCartItems(ctx, cart)
	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		log.Printf("GetCart: failed to update summary for cart %s: %v", cart.ID, err)
	}

	return cart, nil
}

// MergeGuestCart moves the guest session's cart lines onto the user's cart
// at login. Quantities of the same product are combined.
func (s *CartService) MergeGuestCart(ctx context.Context, guestCartID, userID string) error {
	if guestCartID == "" {
		return nil
	}

	userCart, err := s.cartRepo.GetOrCreateCartByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user cart: %w", err)
	}
	// A repeated login leaves the user's own cart ID in the session; folding
	// a cart into itself would double its lines and then delete it.
	if guestCartID == userCart.ID {
		return nil
	}

	guestItems, err := s.cartItemRepo.GetByCartID(ctx, guestCartID)
	if err != nil {
		return fmt.Errorf("failed to load guest cart items: %w", err)
	}
	if len(guestItems) == 0 {
		return nil
	}

	for _, item := range guestItems {
		if _, err := s.AddItemToCart(ctx, userCart.ID, userID, item.ProductID, item.Qty); err != nil {
			return fmt.Errorf("failed to merge cart item %s: %w", item.ProductID, err)
		}
	}

	if err := s.cartRepo.DeleteCart(ctx, guestCartID); err != nil {
		log.Printf("MergeGuestCart: failed to delete guest cart %s: %v", guestCartID, err)
	}

	return nil
}

func (s *CartService) recalculateCartItems(ctx context.Context, cart *models.Cart) {
	if cart == nil || len(cart.CartItems) == 0 {
		return
	}

	now := s.now()
	for i := range cart.CartItems {
		item := &cart.CartItems[i]

		if item.Product == nil || item.Product.ID == "" {
			product, err := s.productRepo.GetByID(ctx, item.ProductID)
			if err != nil || product == nil {
				log.Printf("recalculateCartItems: product %s not found for cart item %s, skipping", item.ProductID, item.ID)
				continue
			}
			item.Product = product
		}

		s.priceCartItemAt(item, item.Product, now)
		if err := s.cartItemRepo.Update(ctx, item); err != nil {
			log.Printf("recalculateCartItems: failed to update cart item %s: %v", item.ID, err)
		}
	}
}

func (s *CartService) priceCartItem(item *models.CartItem, product *models.Product) {
	s.priceCartItemAt(item, product, s.now())
}

func (s *CartService) priceCartItemAt(item *models.CartItem, product *models.Product, now time.Time) {
	quote := calc.EffectivePrice(product.Pricing(), now)

	item.BasePrice = quote.OriginalPrice
	item.FinalPriceUnit = quote.EffectivePrice
	item.DiscountAmount = calc.DiscountAmountPerUnit(quote)
	item.Subtotal = quote.EffectivePrice.Mul(decimal.NewFromInt(int64(item.Qty)))
}
