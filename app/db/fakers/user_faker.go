package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/models"
)

func UserFaker() *models.User {
	return &models.User{
		ID:                uuid.New().String(),
		FirstName:         faker.FirstName(),
		LastName:          faker.LastName(),
		Email:             faker.Email(),
		Phone:             faker.Phonenumber(),
		Password:          helpers.HashPassword("password123"),
		Role:              models.RoleCustomer,
		SubscribedToDeals: rand.Intn(2) == 0,
	}
}

func AdminFaker() *models.User {
	return &models.User{
		ID:        uuid.New().String(),
		FirstName: "Store",
		LastName:  "Admin",
		Email:     "admin@freshacres.test",
		Password:  helpers.HashPassword("admin12345"),
		Role:      models.RoleAdmin,
	}
}
