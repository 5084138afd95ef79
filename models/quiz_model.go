package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Category         Category   `gorm:"size:50;not null;index" json:"category"`
	Type             QuizType   `gorm:"size:20;not null;default:'quiz'" json:"type"`
	TimeLimitMinutes int        `gorm:"not null;default:0" json:"time_limit_minutes"`
	Deadline         *time.Time `json:"deadline,omitempty"`

	// Targeting. When Assignees and Groups are both empty the quiz targets
	// every student whose category and level match.
	Level     *int     `json:"level,omitempty"`
	Assignees []*User  `gorm:"many2many:quiz_assignees;" json:"assignees,omitempty"`
	Groups    []*Group `gorm:"many2many:quiz_groups;" json:"groups,omitempty"`

	CreatedByID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	Questions   []Question `gorm:"foreignkey:QuizID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quiz) Timed() bool {
	return q.TimeLimitMinutes > 0
}

func (q *Quiz) DeadlinePassed(now time.Time) bool {
	return q.Deadline != nil && now.After(*q.Deadline)
}
