package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/services"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

type AuthHandler struct {
	userRepo repositories.UserRepositoryImpl
	cartRepo repositories.CartRepositoryImpl
	cartSvc  *services.CartService
	store    sessions.SessionStore
	render   *render.Render
	validate *validator.Validate
}

func NewAuthHandler(userRepo repositories.UserRepositoryImpl, cartRepo repositories.CartRepositoryImpl, cartSvc *services.CartService, store sessions.SessionStore, render *render.Render) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		cartRepo: cartRepo,
		cartSvc:  cartSvc,
		store:    store,
		render:   render,
		validate: validator.New(),
	}
}

type registerRequest struct {
	FirstName         string `json:"first_name" validate:"required,max=100"`
	LastName          string `json:"last_name" validate:"required,max=100"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"max=20"`
	Password          string `json:"password" validate:"required,min=8"`
	SubscribedToDeals bool   `json:"subscribed_to_deals"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID                string `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	SubscribedToDeals bool   `json:"subscribed_to_deals"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Role:              u.Role,
		SubscribedToDeals: u.SubscribedToDeals,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
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

	existing, err := h.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("AuthHandler.Register: failed to check email %s: %v", req.Email, err)
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "email is already registered", http.StatusConflict)
		return
	}

	hashed := helpers.HashPassword(req.Password)
	if hashed == "" {
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:                uuid.New().String(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Password:          hashed,
		Role:              models.RoleCustomer,
		SubscribedToDeals: req.SubscribedToDeals,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		log.Printf("AuthHandler.Register: failed to create user: %v", err)
		http.Error(w, "failed to register", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, newUserResponse(user))
}

// Login authenticates the user and folds the guest session's cart, if any,
// into the user's cart.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("AuthHandler.Login: failed to look up %s: %v", req.Email, err)
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(req.Password)) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	guestCartID := h.store.GetCartID(r)

	if err := h.store.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.Login: failed to save session: %v", err)
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		return
	}

	if err := h.cartSvc.MergeGuestCart(ctx, guestCartID, user.ID); err != nil {
		log.Printf("AuthHandler.Login: failed to merge guest cart %s: %v", guestCartID, err)
	}

	userCart, err := h.cartRepo.GetOrCreateCartByUserID(ctx, user.ID)
	if err != nil {
		log.Printf("AuthHandler.Login: failed to resolve user cart: %v", err)
	} else if err := h.store.SetCartID(w, r, userCart.ID); err != nil {
		log.Printf("AuthHandler.Login: failed to save cart session: %v", err)
	}

	_ = h.render.JSON(w, http.StatusOK, newUserResponse(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
		http.Error(w, "failed to log out", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	if !ok || user == nil {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newUserResponse(user))
}

type subscriptionRequest struct {
	SubscribedToDeals bool `json:"subscribed_to_deals"`
}

// UpdateSubscription toggles deal emails for the logged-in user.
func (h *AuthHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := ctx.Value(helpers.ContextKeyUser).(*models.User)
	if !ok || user == nil {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user.SubscribedToDeals = req.SubscribedToDeals
	if err := h.userRepo.Update(ctx, user); err != nil {
		log.Printf("AuthHandler.UpdateSubscription: failed to update user %s: %v", user.ID, err)
		http.Error(w, "failed to update subscription", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newUserResponse(user))
}
