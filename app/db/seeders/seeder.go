package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/freshacres/go-farmstore/app/db/fakers"
)

const (
	farmCount       = 4
	productsPerFarm = 6
	customerCount   = 10
)

// DBSeed fills an empty database with farms, products and users. Products
// hang off their farm so associations seed in one create.
func DBSeed(db *gorm.DB) error {
	admin := fakers.AdminFaker()
	if err := db.FirstOrCreate(admin, "email = ?", admin.Email).Error; err != nil {
		return err
	}

	for i := 0; i < customerCount; i++ {
		user := fakers.UserFaker()
		if err := db.FirstOrCreate(user, "email = ?", user.Email).Error; err != nil {
			return err
		}
	}

	for i := 0; i < farmCount; i++ {
		farm := fakers.FarmFaker()
		if err := db.Create(farm).Error; err != nil {
			return err
		}

		for j := 0; j < productsPerFarm; j++ {
			product := fakers.ProductFaker(farm)
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d farms with %d products each, plus %d customers", farmCount, productsPerFarm, customerCount)
	return nil
}
