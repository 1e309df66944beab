package database

import (
	"github.com/google/uuid"
	"github.com/survey-collective/backend/errs"
	"github.com/survey-collective/backend/models"
	"gorm.io/gorm"
)

type ParticipantRepo struct {
	db *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db}
}

// Add inserts a new participation row. The one-of identity invariant is
// enforced here so no caller can record a row with both or neither of
// user reference and anonymous identifier.
func (r *ParticipantRepo) Add(participant *models.Participant) error {
	if !participant.Valid() {
		return errs.NewBadRequestError("participant must have exactly one of user_id and anonymous_id")
	}
	return r.db.Create(participant).Error
}

// CountBySurvey returns the number of participation rows for a survey.
func (r *ParticipantRepo) CountBySurvey(surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count, err
}

// HasParticipated reports whether userID already has a participation row for
// the survey. Best effort: participation is not unique at the data layer, so
// this only informs whether to offer the action.
func (r *ParticipantRepo) HasParticipated(surveyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&count).Error
	return count > 0, err
}
