package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     Role      `gorm:"size:20;not null;default:'student'" json:"role"`

	Category *Category `gorm:"size:50" json:"category,omitempty"`
	Level    *int      `json:"level,omitempty"`

	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent   *User      `gorm:"foreignkey:ParentID" json:"-"`

	Groups        []*Group        `gorm:"many2many:group_members;" json:"groups,omitempty"`
	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	IsActive          bool    `gorm:"default:true" json:"is_active"`

	ResetPasswordToken          *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:255;not null;unique" json:"name"`
	Members   []*User   `gorm:"many2many:group_members;" json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
