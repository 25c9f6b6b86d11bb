package migrations

import (
	"github.com/freshacres/go-farmstore/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.FarmProfile{}, &models.Product{}, &models.Nutrition{}, &models.Review{}, &models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{}, &models.Payment{})
}
