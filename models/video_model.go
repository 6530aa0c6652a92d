package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"not null;index" json:"course_id"`

	Title       string  `gorm:"size:255;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Chapter     *string `gorm:"size:255" json:"chapter"`
	Type        string  `gorm:"size:20;default:'video'" json:"type"`
	Order       int     `gorm:"column:display_order;default:0" json:"order"`
	IsDemo      bool    `gorm:"default:false" json:"is_demo"`

	VideoURL *string `gorm:"size:500" json:"video_url"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
