package models

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID        uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt        string    `gorm:"type:text;not null" json:"prompt"`
	OptionA       string    `gorm:"type:text;not null" json:"option_a"`
	OptionB       string    `gorm:"type:text;not null" json:"option_b"`
	OptionC       string    `gorm:"type:text;not null" json:"option_c"`
	OptionD       string    `gorm:"type:text;not null" json:"option_d"`
	CorrectAnswer string    `gorm:"size:1;not null" json:"correct_answer,omitempty"`
	ImageURL      *string   `gorm:"size:255" json:"image_url,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
