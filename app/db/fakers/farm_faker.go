package fakers

import (
	"fmt"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/freshacres/go-farmstore/app/models"
)

var farmSuffixes = []string{"Farm", "Acres", "Orchard", "Fields", "Homestead"}

func FarmFaker() *models.FarmProfile {
	name := fmt.Sprintf("%s %s", faker.LastName(), farmSuffixes[rand.Intn(len(farmSuffixes))])

	return &models.FarmProfile{
		ID:       uuid.New().String(),
		Name:     name,
		Slug:     slug.Make(name + "-" + uuid.NewString()[:6]),
		Location: faker.GetRealAddress().City,
		Story:    faker.Paragraph(),
		Image:    "/images/farms/default.jpg",
	}
}
