package repositories

import (
	"context"
	"errors"

	"github.com/freshacres/go-farmstore/app/models"
	"gorm.io/gorm"
)

type FarmRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.FarmProfile, error)
	GetBySlug(ctx context.Context, slug string) (*models.FarmProfile, error)
	GetByID(ctx context.Context, id string) (*models.FarmProfile, error)
	Create(ctx context.Context, farm *models.FarmProfile) error
	Update(ctx context.Context, farm *models.FarmProfile) error
}

type farmRepository struct {
	db *gorm.DB
}

func NewFarmRepository(db *gorm.DB) FarmRepositoryImpl {
	return &farmRepository{db}
}

func (r *farmRepository) GetAll(ctx context.Context) ([]models.FarmProfile, error) {
	var farms []models.FarmProfile
	err := r.db.WithContext(ctx).Order("name ASC").Find(&farms).Error
	return farms, err
}

func (r *farmRepository) GetBySlug(ctx context.Context, slug string) (*models.FarmProfile, error) {
	var farm models.FarmProfile
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.Nutrition").
		Where("slug = ?", slug).
		First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farm, nil
}

func (r *farmRepository) GetByID(ctx context.Context, id string) (*models.FarmProfile, error) {
	var farm models.FarmProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &farm, nil
}

func (r *farmRepository) Create(ctx context.Context, farm *models.FarmProfile) error {
	return r.db.WithContext(ctx).Create(farm).Error
}

func (r *farmRepository) Update(ctx context.Context, farm *models.FarmProfile) error {
	return r.db.WithContext(ctx).Save(farm).Error
}
