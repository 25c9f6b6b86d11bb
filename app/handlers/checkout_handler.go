package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/services"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	orderRepo   repositories.OrderRepository
	store       sessions.SessionStore
	render      *render.Render
	validate    *validator.Validate
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, orderRepo repositories.OrderRepository, store sessions.SessionStore, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc: checkoutSvc,
		orderRepo:   orderRepo,
		store:       store,
		render:      render,
		validate:    validator.New(),
	}
}

type checkoutRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Reference     string          `json:"reference"`
}

// PlaceOrder drives the checkout: it hands the session cart to the checkout
// service and maps the service's error taxonomy onto HTTP statuses.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Error(w, "login required to checkout", http.StatusUnauthorized)
		return
	}

	cartID := h.store.GetCartID(r)
	if cartID == "" {
		http.Error(w, "no cart in session", http.StatusBadRequest)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"errors": helpers.FormatValidationErrors(verrs),
			})
			return
		}
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	order, err := h.checkoutSvc.PlaceOrder(ctx, userID, cartID, req.PaymentMethod, req.Amount, req.Reference)
	if err != nil {
		h.writeCheckoutError(w, cartID, err)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, cartID string, err error) {
	var pnfErr *services.ProductNotFoundError
	var amtErr *services.InvalidAmountError

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusBadRequest)
	case errors.As(err, &pnfErr):
		http.Error(w, pnfErr.Error()+"; remove it from your cart and retry", http.StatusUnprocessableEntity)
	case errors.As(err, &amtErr):
		http.Error(w, amtErr.Error(), http.StatusBadRequest)
	default:
		log.Printf("CheckoutHandler.PlaceOrder: checkout failed for cart %s: %v", cartID, err)
		http.Error(w, "checkout failed", http.StatusInternalServerError)
	}
}

func (h *CheckoutHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}

	orders, err := h.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("CheckoutHandler.ListMyOrders: failed to load orders for user %s: %v", userID, err)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, orders)
}

// OrderDetail returns an order exactly as snapshotted at checkout. Prices
// are never recomputed here.
func (h *CheckoutHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderCode := mux.Vars(r)["code"]

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}

	order, err := h.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		log.Printf("CheckoutHandler.OrderDetail: failed to load order %s: %v", orderCode, err)
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil || order.UserID != userID {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, order)
}

// CancelOrder is the one allowed mutation of a placed order.
func (h *CheckoutHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderCode := mux.Vars(r)["code"]

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}

	order, err := h.orderRepo.FindByCode(ctx, orderCode)
	if err != nil {
		log.Printf("CheckoutHandler.CancelOrder: failed to load order %s: %v", orderCode, err)
		http.Error(w, "failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil || order.UserID != userID {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.Status == models.OrderStatusCancelled {
		_ = h.render.JSON(w, http.StatusOK, order)
		return
	}

	if err := h.orderRepo.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
		log.Printf("CheckoutHandler.CancelOrder: failed to cancel order %s: %v", order.ID, err)
		http.Error(w, "failed to cancel order", http.StatusInternalServerError)
		return
	}

	order.Status = models.OrderStatusCancelled
	_ = h.render.JSON(w, http.StatusOK, order)
}
