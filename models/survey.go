package models

import (
	"time"

	"github.com/google/uuid"
)

type SurveyStatus string

const (
	SurveyActive    SurveyStatus = "active"
	SurveyDraft     SurveyStatus = "draft"
	SurveyCompleted SurveyStatus = "completed"
)

// ValidStatus reports whether s is one of the three survey lifecycle states.
func ValidStatus(s SurveyStatus) bool {
	switch s {
	case SurveyActive, SurveyDraft, SurveyCompleted:
		return true
	}
	return false
}

// Survey is a listing pointing at an externally hosted survey. Only the
// creator may update or delete it.
type Survey struct {
	ID            uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string       `json:"title" db:"title" gorm:"type:text;not null"`
	Description   string       `json:"description" db:"description" gorm:"type:text;not null"`
	CategoryID    int          `json:"category_id" db:"category_id" gorm:"not null;index"`
	Category      *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	CreatorID     uuid.UUID    `json:"creator_id" db:"creator_id" gorm:"type:uuid;not null;index"`
	Creator       *Profile     `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
	ExternalURL   string       `json:"external_url" db:"external_url" gorm:"type:text;not null"`
	EstimatedTime int          `json:"estimated_time" db:"estimated_time" gorm:"not null"`
	ClosingDate   *time.Time   `json:"closing_date,omitempty" db:"closing_date" gorm:"type:timestamp"`
	Status        SurveyStatus `json:"status" db:"status" gorm:"type:text;not null;default:'draft'"`
	IsFeatured    bool         `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// IsClosed reports whether participation is over: the survey was marked
// completed, or its closing date has passed. Other fields don't matter.
func (s *Survey) IsClosed(now time.Time) bool {
	if s.Status == SurveyCompleted {
		return true
	}
	return s.ClosingDate != nil && s.ClosingDate.Before(now)
}
