package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
)

type ReviewHandler struct {
	reviewRepo  repositories.ReviewRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	render      *render.Render
	validate    *validator.Validate
}

func NewReviewHandler(reviewRepo repositories.ReviewRepositoryImpl, productRepo repositories.ProductRepositoryImpl, render *render.Render) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		render:      render,
		validate:    validator.New(),
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	userID, ok := ctx.Value(helpers.ContextKeyUserID).(string)
	if !ok || userID == "" {
		http.Error(w, "login required to review", http.StatusUnauthorized)
		return
	}

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ReviewHandler.Create: failed to load product %s: %v", slug, err)
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	var req reviewRequest
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

	existing, err := h.reviewRepo.GetByProductAndUser(ctx, product.ID, userID)
	if err != nil {
		log.Printf("ReviewHandler.Create: failed to check existing review: %v", err)
		http.Error(w, "failed to create review", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "you already reviewed this product", http.StatusConflict)
		return
	}

	review := &models.Review{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.reviewRepo.Create(ctx, review); err != nil {
		log.Printf("ReviewHandler.Create: failed to create review for product %s: %v", product.ID, err)
		http.Error(w, "failed to create review", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ReviewHandler.ListByProduct: failed to load product %s: %v", slug, err)
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	reviews, err := h.reviewRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		log.Printf("ReviewHandler.ListByProduct: failed to load reviews for product %s: %v", product.ID, err)
		http.Error(w, "failed to load reviews", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, reviews)
}
