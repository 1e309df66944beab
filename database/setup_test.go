package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/survey-collective/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema and seed
// data applied. A single connection keeps every query on the same in-memory
// instance.
func newTestDB(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	return New(db)
}

func createTestCreator(t *testing.T, db Database, email string) *models.Profile {
	t.Helper()

	user := models.User{Email: email, PasswordHash: []byte("x")}
	require.NoError(t, db.UserRepo().Add(&user))

	profile := models.Profile{ID: user.ID, FullName: "Test Researcher"}
	require.NoError(t, db.ProfileRepo().Add(&profile))
	return &profile
}

type surveyParams struct {
	Title         string
	Status        models.SurveyStatus
	CategoryID    int
	EstimatedTime int
	ClosingDate   *time.Time
	IsFeatured    bool
	CreatedAt     time.Time
}

func createTestSurvey(t *testing.T, db Database, creatorID uuid.UUID, params surveyParams) *models.Survey {
	t.Helper()

	if params.Title == "" {
		params.Title = "Untitled Study"
	}
	if params.Status == "" {
		params.Status = models.SurveyActive
	}
	if params.CategoryID == 0 {
		params.CategoryID = 1
	}
	if params.EstimatedTime == 0 {
		params.EstimatedTime = 10
	}
	if params.CreatedAt.IsZero() {
		params.CreatedAt = time.Now()
	}

	survey := models.Survey{
		Title:         params.Title,
		Description:   "A study about " + params.Title,
		CategoryID:    params.CategoryID,
		CreatorID:     creatorID,
		ExternalURL:   "https://example.com/s",
		EstimatedTime: params.EstimatedTime,
		ClosingDate:   params.ClosingDate,
		Status:        params.Status,
		IsFeatured:    params.IsFeatured,
		CreatedAt:     params.CreatedAt,
		UpdatedAt:     params.CreatedAt,
	}
	require.NoError(t, db.SurveyRepo().Add(&survey))
	return &survey
}
