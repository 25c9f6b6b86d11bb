package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

type ProductAdminHandler struct {
	productRepo repositories.ProductRepositoryImpl
	farmRepo    repositories.FarmRepositoryImpl
	render      *render.Render
	validate    *validator.Validate
	now         func() time.Time
}

func NewProductAdminHandler(productRepo repositories.ProductRepositoryImpl, farmRepo repositories.FarmRepositoryImpl, render *render.Render) *ProductAdminHandler {
	return &ProductAdminHandler{
		productRepo: productRepo,
		farmRepo:    farmRepo,
		render:      render,
		validate:    validator.New(),
		now:         time.Now,
	}
}

type nutritionRequest struct {
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Fat      decimal.Decimal `json:"fat"`

	Carbohydrates decimal.NullDecimal `json:"carbohydrates"`
	Fiber         decimal.NullDecimal `json:"fiber"`
	Sugar         decimal.NullDecimal `json:"sugar"`
	Sodium        decimal.NullDecimal `json:"sodium"`
	Cholesterol   decimal.NullDecimal `json:"cholesterol"`

	Vitamins []string `json:"vitamins"`
}

type productRequest struct {
	Name            string            `json:"name" validate:"required,max=255"`
	FarmID          string            `json:"farm_id"`
	Description     string            `json:"description"`
	Image           string            `json:"image" validate:"max=255"`
	Price           decimal.Decimal   `json:"price"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	IsOnSale        bool              `json:"is_on_sale"`
	SaleStartDate   *time.Time        `json:"sale_start_date"`
	SaleEndDate     *time.Time        `json:"sale_end_date"`
	Nutrition       *nutritionRequest `json:"nutrition"`
}

var oneHundred = decimal.NewFromInt(100)

// validateRequest runs the tag validations plus the numeric rules the
// validator cannot express on decimals.
func (h *ProductAdminHandler) validateRequest(req productRequest) map[string]string {
	problems := make(map[string]string)

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for field, msg := range helpers.FormatValidationErrors(verrs) {
				problems[field] = msg
			}
		}
	}

	if !req.Price.IsPositive() {
		problems["price"] = "Price must be greater than 0."
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(oneHundred) {
		problems["discount_percent"] = "DiscountPercent must be between 0 and 100."
	}
	if req.SaleStartDate != nil && req.SaleEndDate != nil && req.SaleEndDate.Before(*req.SaleStartDate) {
		problems["sale_end_date"] = "SaleEndDate must not be before SaleStartDate."
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

// apply copies the request onto the product, regenerates the slug from the
// name and refreshes the SalePrice cache from the price engine.
func (h *ProductAdminHandler) apply(product *models.Product, req productRequest) {
	product.Name = req.Name
	product.Slug = helpers.GenerateSlug(req.Name)
	product.FarmID = req.FarmID
	product.Description = req.Description
	product.Image = req.Image
	product.Price = req.Price
	product.DiscountPercent = req.DiscountPercent
	product.IsOnSale = req.IsOnSale
	product.SaleStartDate = req.SaleStartDate
	product.SaleEndDate = req.SaleEndDate

	quote := calc.EffectivePrice(product.Pricing(), h.now())
	product.SalePrice = quote.EffectivePrice

	if req.Nutrition != nil {
		if product.Nutrition == nil {
			product.Nutrition = &models.Nutrition{ProductID: product.ID}
		}
		n := product.Nutrition
		n.Calories = req.Nutrition.Calories
		n.Protein = req.Nutrition.Protein
		n.Fat = req.Nutrition.Fat
		n.Carbohydrates = req.Nutrition.Carbohydrates
		n.Fiber = req.Nutrition.Fiber
		n.Sugar = req.Nutrition.Sugar
		n.Sodium = req.Nutrition.Sodium
		n.Cholesterol = req.Nutrition.Cholesterol
		n.Vitamins = req.Nutrition.Vitamins
	}
}

func (h *ProductAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if problems := h.validateRequest(req); problems != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": problems})
		return
	}

	if req.FarmID != "" {
		farm, err := h.farmRepo.GetByID(ctx, req.FarmID)
		if err != nil {
			log.Printf("ProductAdminHandler.Create: failed to check farm %s: %v", req.FarmID, err)
			http.Error(w, "failed to create product", http.StatusInternalServerError)
			return
		}
		if farm == nil {
			http.Error(w, "farm not found", http.StatusUnprocessableEntity)
			return
		}
	}

	product := &models.Product{ID: uuid.New().String()}
	h.apply(product, req)

	if err := h.productRepo.Create(ctx, product); err != nil {
		log.Printf("ProductAdminHandler.Create: failed to create product: %v", err)
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ProductAdminHandler.Update: failed to load product %s: %v", id, err)
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if problems := h.validateRequest(req); problems != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": problems})
		return
	}

	h.apply(product, req)

	if err := h.productRepo.Update(ctx, product); err != nil {
		log.Printf("ProductAdminHandler.Update: failed to update product %s: %v", id, err)
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}

// Delete soft-deletes a product. Placed orders keep their snapshots; only
// the catalog stops listing it.
func (h *ProductAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ProductAdminHandler.Delete: failed to load product %s: %v", id, err)
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	if err := h.productRepo.Delete(ctx, id); err != nil {
		log.Printf("ProductAdminHandler.Delete: failed to delete product %s: %v", id, err)
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
