package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoProgress is one row per (user, video). Upserts are idempotent and
// progress only moves forward; a lower value than the stored one is rejected.
type VideoProgress struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;index:idx_progress_user_video,unique" json:"user_id"`
	VideoID  uuid.UUID `gorm:"not null;index:idx_progress_user_video,unique" json:"video_id"`
	CourseID uuid.UUID `gorm:"not null;index" json:"course_id"`

	Progress  float64 `gorm:"type:numeric(5,2);default:0" json:"progress"`
	Completed bool    `gorm:"default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
