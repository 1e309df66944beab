package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a user. Created on signup with the same id
// as the User row; only the owning user may update it.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FullName  string    `json:"full_name" db:"full_name" gorm:"type:text;not null"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
