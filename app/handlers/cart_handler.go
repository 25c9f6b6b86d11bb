package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/services"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

type CartHandler struct {
	cartSvc *services.CartService
	store   sessions.SessionStore
	render  *render.Render
}

func NewCartHandler(cartSvc *services.CartService, store sessions.SessionStore, render *render.Render) *CartHandler {
	return &CartHandler{
		cartSvc: cartSvc,
		store:   store,
		render:  render,
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := sessions.ResolveCartID(h.store, w, r)
	if err != nil {
		log.Printf("CartHandler.GetCart: failed to resolve cart session: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartSvc.GetCart(ctx, cartID)
	if err != nil {
		log.Printf("CartHandler.GetCart: failed to load cart %s: %v", cartID, err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}
	if cart == nil {
		cart = &models.Cart{ID: cartID}
	}

	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" || req.Qty <= 0 {
		http.Error(w, "product_id and a positive qty are required", http.StatusBadRequest)
		return
	}

	cartID, err := sessions.ResolveCartID(h.store, w, r)
	if err != nil {
		log.Printf("CartHandler.AddItem: failed to resolve cart session: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	userID, _ := ctx.Value(helpers.ContextKeyUserID).(string)

	cart, err := h.cartSvc.AddItemToCart(ctx, cartID, userID, req.ProductID, req.Qty)
	if err != nil {
		log.Printf("CartHandler.AddItem: failed to add item to cart %s: %v", cartID, err)
		http.Error(w, "failed to add item to cart", http.StatusUnprocessableEntity)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	cartID := h.store.GetCartID(r)
	if cartID == "" {
		http.Error(w, "no cart in session", http.StatusNotFound)
		return
	}

	cart, err := h.cartSvc.UpdateCartItemQty(ctx, cartID, req.ProductID, req.Qty)
	if err != nil {
		log.Printf("CartHandler.UpdateItem: failed to update cart %s: %v", cartID, err)
		http.Error(w, "failed to update cart item", http.StatusUnprocessableEntity)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	cartID := h.store.GetCartID(r)
	if cartID == "" {
		http.Error(w, "no cart in session", http.StatusNotFound)
		return
	}

	cart, err := h.cartSvc.RemoveItemFromCart(ctx, cartID, productID)
	if err != nil {
		log.Printf("CartHandler.RemoveItem: failed to remove item from cart %s: %v", cartID, err)
		http.Error(w, "failed to remove cart item", http.StatusUnprocessableEntity)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, cart)
}
