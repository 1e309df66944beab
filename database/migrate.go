package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/survey-collective/backend/models"
	"gorm.io/gorm"
)

// defaultCategories seeds the read-only category table. The application has
// no create path for categories, so new ones arrive via migration.
var defaultCategories = []models.Category{
	{Name: "Academic Research", Description: "University studies and thesis data collection"},
	{Name: "Market Research", Description: "Consumer preferences and product feedback"},
	{Name: "Health & Wellness", Description: "Health habits, wellbeing and lifestyle studies"},
	{Name: "Technology", Description: "Software, devices and digital behavior"},
	{Name: "Social Science", Description: "Opinions, attitudes and social behavior"},
	{Name: "Education", Description: "Learning methods and educational outcomes"},
}

// Migrate brings the schema up to date and seeds lookup data.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "1-initial-schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Profile{},
					&models.Category{},
					&models.Survey{},
					&models.Participant{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&models.Participant{},
					&models.Survey{},
					&models.Category{},
					&models.Profile{},
					&models.User{},
				)
			},
		},
		{
			ID: "2-seed-categories",
			Migrate: func(tx *gorm.DB) error {
				for i := range defaultCategories {
					category := defaultCategories[i]
					if err := tx.Where("name = ?", category.Name).
						FirstOrCreate(&category).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Delete(&models.Category{}, "1 = 1").Error
			},
		},
	})

	return m.Migrate()
}
