package fakers

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/freshacres/go-farmstore/app/models"
	"github.com/freshacres/go-farmstore/app/utils/calc"
)

var produceNames = []string{
	"Heirloom Tomatoes", "Rainbow Carrots", "Honeycrisp Apples", "Baby Spinach",
	"Golden Beets", "Sugar Snap Peas", "Butternut Squash", "Red Leaf Lettuce",
	"Sweet Corn", "Wild Blueberries", "Purple Kale", "Fingerling Potatoes",
}

var vitaminPool = []string{"A", "B6", "B12", "C", "D", "E", "K", "Folate", "Iron", "Calcium"}

// ProductFaker builds a product for the given farm. Roughly half the
// products go on sale with a window around now, so seeded data exercises
// both sides of the discount logic.
func ProductFaker(farm *models.FarmProfile) *models.Product {
	name := produceNames[rand.Intn(len(produceNames))]
	price := decimal.NewFromFloat(1 + rand.Float64()*19).Round(2)

	product := &models.Product{
		ID:          uuid.New().String(),
		FarmID:      farm.ID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Image:       "/images/products/default.jpg",
		Price:       price,
		Nutrition:   nutritionFaker(),
	}

	if rand.Intn(2) == 0 {
		start := time.Now().AddDate(0, 0, -rand.Intn(5))
		end := start.AddDate(0, 0, 7+rand.Intn(14))

		product.IsOnSale = true
		product.DiscountPercent = decimal.NewFromInt(int64(5 + rand.Intn(10)*5))
		product.SaleStartDate = &start
		product.SaleEndDate = &end
	}

	quote := calc.EffectivePrice(product.Pricing(), time.Now())
	product.SalePrice = quote.EffectivePrice

	return product
}

func nutritionFaker() *models.Nutrition {
	n := &models.Nutrition{
		ID:       uuid.New().String(),
		Calories: decimal.NewFromInt(int64(20 + rand.Intn(200))),
		Protein:  decimal.NewFromFloat(rand.Float64() * 5).Round(2),
		Fat:      decimal.NewFromFloat(rand.Float64() * 3).Round(2),
	}

	if rand.Intn(2) == 0 {
		n.Carbohydrates = decimal.NewNullDecimal(decimal.NewFromFloat(rand.Float64() * 30).Round(2))
		n.Fiber = decimal.NewNullDecimal(decimal.NewFromFloat(rand.Float64() * 8).Round(2))
		n.Sugar = decimal.NewNullDecimal(decimal.NewFromFloat(rand.Float64() * 15).Round(2))
	}

	count := rand.Intn(4)
	for i := 0; i < count; i++ {
		n.Vitamins = append(n.Vitamins, vitaminPool[rand.Intn(len(vitaminPool))])
	}

	return n
}
