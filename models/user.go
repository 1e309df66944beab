package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds the credentials behind a principal. Everything shown to other
// visitors lives on the Profile row sharing the same id.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash []byte    `json:"-" db:"password_hash" gorm:"type:bytea;not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
