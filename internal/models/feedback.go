package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one critique of an uploaded self-introduction. Rows are
// written once and never updated, except for the Indexed flag.
type Feedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserEmail    string    `gorm:"type:text;index;not null" json:"user_email"`
	Company      string    `gorm:"type:text" json:"company"`
	Position     string    `gorm:"type:text" json:"position"`
	Filename     string    `gorm:"type:text" json:"filename"`
	Summary      string    `gorm:"type:text" json:"summary"`
	FullFeedback string    `gorm:"type:text" json:"full_feedback"`
	Todo         string    `gorm:"type:text" json:"todo"`
	Score        *int      `gorm:"type:integer" json:"-"`
	Indexed      bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
