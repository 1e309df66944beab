package database

import (
	"errors"

	"github.com/survey-collective/backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by name. Categories are read-only
// from the application's perspective; rows come from the migration seed.
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or nil when no such row exists.
func (r *CategoryRepo) FindByID(id int) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
