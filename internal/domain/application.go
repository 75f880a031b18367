package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationRecord is one row of a user's response history: a generated
// cover letter and, once the negotiation is submitted, the sent timestamp.
type ApplicationRecord struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	VacancyID    string     `json:"vacancy_id" gorm:"not null"`
	VacancyTitle string     `json:"vacancy_title" gorm:"not null"`
	CoverLetter  string     `json:"cover_letter" gorm:"type:text;not null"`
	MatchScore   int        `json:"match_score" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	SentAt       *time.Time `json:"sent_at"`
}
