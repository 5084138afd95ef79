package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Answers maps a question id to the chosen letter. Unanswered questions have no key.
type Answers map[string]string

type Submission struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user_quiz" json:"user_id"`
	QuizID         uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user_quiz" json:"quiz_id"`
	Score          int                         `gorm:"not null" json:"score"`
	TotalQuestions int                         `gorm:"not null" json:"total_questions"`
	Answers        datatypes.JSONType[Answers] `gorm:"type:jsonb;not null" json:"answers"`
	SubmittedAt    time.Time                   `gorm:"not null" json:"submitted_at"`

	User User `gorm:"foreignkey:UserID" json:"-"`
	Quiz Quiz `gorm:"foreignkey:QuizID" json:"-"`
}
