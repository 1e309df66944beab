package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/survey-collective/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort keys accepted by SurveyRepo.List.
const (
	SortNewest      = "newest"
	SortClosingSoon = "closing-soon"
	SortShortest    = "shortest"
	SortMostNeeded  = "most-needed"
)

const DefaultPageSize = 8

// SurveyFilter describes one listing query: optional filters, a sort key and
// offset pagination. Zero values mean "not filtered".
type SurveyFilter struct {
	Status     models.SurveyStatus
	CategoryID int
	Search     string
	MinTime    int
	MaxTime    int
	Sort       string
	Page       int
	Limit      int
}

type SurveyRepo struct {
	db *gorm.DB
}

func NewSurveyRepo(db *gorm.DB) *SurveyRepo {
	return &SurveyRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *SurveyRepo) GetDB() *gorm.DB {
	return r.db
}

// List returns one page of surveys matching the filter plus the total number
// of matches. Every sort carries a secondary ordering by id so pages are
// deterministic for rows with equal sort keys.
func (r *SurveyRepo) List(filter SurveyFilter) ([]*models.Survey, int64, error) {
	query := r.db.Model(&models.Survey{}).
		Preload("Category").
		Preload("Creator")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinTime > 0 {
		query = query.Where("estimated_time >= ?", filter.MinTime)
	}
	if filter.MaxTime > 0 {
		query = query.Where("estimated_time <= ?", filter.MaxTime)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch filter.Sort {
	case SortClosingSoon:
		query = query.Order("closing_date ASC").Order("id")
	case SortShortest:
		query = query.Order("estimated_time ASC").Order("id")
	case SortMostNeeded:
		query = query.
			Joins("LEFT JOIN (SELECT survey_id, COUNT(*) AS participant_count FROM participants GROUP BY survey_id) pc ON pc.survey_id = surveys.id").
			Order("COALESCE(pc.participant_count, 0) ASC").Order("id")
	case SortNewest:
		fallthrough
	default:
		query = query.Order("created_at DESC").Order("id")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	query = query.Offset((page - 1) * limit).Limit(limit)

	var surveys []*models.Survey
	if err := query.Find(&surveys).Error; err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

// FindFeatured returns up to limit active surveys flagged as featured,
// newest first.
func (r *SurveyRepo) FindFeatured(limit int) ([]*models.Survey, error) {
	var surveys []*models.Survey
	err := r.db.Preload("Category").Preload("Creator").
		Where("status = ?", models.SurveyActive).
		Where("is_featured = ?", true).
		Order("created_at DESC").Order("id").
		Limit(limit).
		Find(&surveys).Error
	return surveys, err
}

// FindByCreator returns all surveys owned by creatorID, newest first.
func (r *SurveyRepo) FindByCreator(creatorID uuid.UUID) ([]*models.Survey, error) {
	var surveys []*models.Survey
	err := r.db.Preload("Category").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").Order("id").
		Find(&surveys).Error
	return surveys, err
}

// FindByID returns a survey by its ID, or nil when no such row exists.
func (r *SurveyRepo) FindByID(id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.Preload("Category").Preload("Creator").First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

// FindOwned fetches a survey filtered by both id and owner. A nil result is
// ambiguous: either the survey does not exist or it belongs to someone else.
// Callers report that as a single combined not-found/no-permission outcome.
func (r *SurveyRepo) FindOwned(id, creatorID uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.Preload("Category").
		Where("id = ? AND creator_id = ?", id, creatorID).
		First(&survey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

// Add inserts a new survey into the database
func (r *SurveyRepo) Add(survey *models.Survey) error {
	if survey.ID == uuid.Nil {
		survey.ID = uuid.New()
	}
	return r.db.Create(survey).Error
}

// Update updates an existing survey in the database. Associations are
// omitted from the save: a survey fetched with a preloaded Category would
// otherwise write the stale category id back over a reassigned CategoryID.
func (r *SurveyRepo) Update(survey *models.Survey) error {
	return r.db.Omit(clause.Associations).Save(survey).Error
}

// Delete removes a survey from the database by id. Irreversible.
func (r *SurveyRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Survey{}, "id = ?", id).Error
}
