package models

import (
	"time"

	"github.com/google/uuid"
)

type ClassSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Category        Category  `gorm:"size:50;not null" json:"category"`
	Level           int       `gorm:"not null" json:"level"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	EndsAt          time.Time `gorm:"not null;index" json:"ends_at"`
	CheckInToken    string    `gorm:"size:64;not null;uniqueIndex" json:"check_in_token,omitempty"`
	AbsenteesMarked bool      `gorm:"default:false" json:"absentees_marked"`

	CreatedAt time.Time `json:"created_at"`
}

type AttendanceRecord struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_student" json:"session_id"`
	StudentID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_student" json:"student_id"`
	Status      AttendanceStatus `gorm:"size:20;not null" json:"status"`
	CheckedInAt *time.Time       `json:"checked_in_at,omitempty"`

	Session ClassSession `gorm:"foreignkey:SessionID" json:"-"`
	Student User         `gorm:"foreignkey:StudentID" json:"student,omitempty"`
}
