package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant records one participation attempt on a survey. Exactly one of
// UserID and AnonymousID is set: signed-in visitors are recorded by user
// reference, anonymous visitors by a generated opaque token.
type Participant struct {
	ID          uint       `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	SurveyID    uuid.UUID  `json:"survey_id" db:"survey_id" gorm:"type:uuid;not null;index"`
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid;index"`
	AnonymousID *string    `json:"anonymous_id,omitempty" db:"anonymous_id" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Valid reports whether the row satisfies the one-of identity invariant.
func (p *Participant) Valid() bool {
	return (p.UserID != nil) != (p.AnonymousID != nil)
}
