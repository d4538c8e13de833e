package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Nickname     string    `gorm:"type:text" json:"nickname"`
	Name         string    `gorm:"type:text" json:"name"`
	Age          string    `gorm:"type:text" json:"age"`
	University   string    `gorm:"type:text" json:"university"`
	GPA          string    `gorm:"type:text" json:"gpa"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
