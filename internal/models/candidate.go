package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a free-assessment registration. Rows are only ever inserted;
// id and created_at are assigned by the database.
type Candidate struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:candidates_email_key" json:"email"`
	Mobile       string    `gorm:"type:text;not null" json:"mobile"`
	MobileDigits string    `gorm:"type:text;not null" json:"mobile_digits"`
	CreatedAt    time.Time `gorm:"not null;default:now();autoCreateTime:false;index:idx_candidates_created_at,sort:desc" json:"created_at"`
}

func (Candidate) TableName() string { return "candidates" }
