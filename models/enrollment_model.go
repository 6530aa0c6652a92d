package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment exists only while the grant is honored; refunds hard-delete it.
// The Purchase row stays behind for invoice/audit history.
type Enrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"not null;index:idx_enrollment_course_user,unique" json:"course_id"`
	UserID   uuid.UUID `gorm:"not null;index:idx_enrollment_course_user,unique" json:"user_id"`

	EnrolledAt            time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
	PercentageCompleted   float64   `gorm:"type:numeric(5,2);default:0" json:"percentage_completed"`
	CompletedCourseStatus bool      `gorm:"default:false" json:"completed_course_status"`

	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
