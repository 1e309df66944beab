package models

import "time"

// Category is a read-only lookup table seeded by migration. The application
// exposes no create/update/delete path for it.
type Category struct {
	ID          int       `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
