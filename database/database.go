package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo        *UserRepo
	profileRepo     *ProfileRepo
	categoryRepo    *CategoryRepo
	surveyRepo      *SurveyRepo
	participantRepo *ParticipantRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:        NewUserRepo(db),
		profileRepo:     NewProfileRepo(db),
		categoryRepo:    NewCategoryRepo(db),
		surveyRepo:      NewSurveyRepo(db),
		participantRepo: NewParticipantRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) SurveyRepo() *SurveyRepo {
	return d.surveyRepo
}

func (d Database) ParticipantRepo() *ParticipantRepo {
	return d.participantRepo
}
