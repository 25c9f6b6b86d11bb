package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/calc"
	"github.com/freshacres/go-farmstore/app/utils/format"
)

type ProductHandler struct {
	productRepo repositories.ProductRepositoryImpl
	reviewRepo  repositories.ReviewRepositoryImpl
	render      *render.Render
}

func NewProductHandler(productRepo repositories.ProductRepositoryImpl, reviewRepo repositories.ReviewRepositoryImpl, render *render.Render) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		render:      render,
	}
}

// productView is a product plus its quote at request time. The quote comes
// from the price engine; SalePrice on the row is only a cache.
type productView struct {
	models.Product
	IsDiscountActive bool            `json:"is_discount_active"`
	EffectivePrice   decimal.Decimal `json:"effective_price"`
	DisplayPrice     string          `json:"display_price"`
}

func newProductView(p models.Product, now time.Time) productView {
	quote := calc.EffectivePrice(p.Pricing(), now)
	return productView{
		Product:          p,
		IsDiscountActive: quote.IsDiscountActive,
		EffectivePrice:   quote.EffectivePrice,
		DisplayPrice:     format.Money(quote.EffectivePrice),
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 12
	offset := (page - 1) * limit

	products, total, err := h.productRepo.GetPaginated(ctx, limit, offset)
	if err != nil {
		log.Printf("ProductHandler.List: failed to load products: %v", err)
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = newProductView(p, now)
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": views,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("ProductHandler.Detail: failed to load product %s: %v", slug, err)
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newProductView(*product, time.Now()))
}
