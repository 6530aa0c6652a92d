package models

import (
	"time"

	"github.com/google/uuid"
)

// Access policy types. Exactly one of the gating fields is active per type;
// the course handlers normalize the competing fields to null on write.
const (
	CourseTypeAllOpen       = "allopen"
	CourseTypePercentage    = "percentage"
	CourseTypeTimeIntervals = "timeIntervals"
)

// Expiry policy for purchases of a course.
const (
	ExpirePolicyNever = "never"
	ExpirePolicyDays  = "expire_days"
)

type Course struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"size:255;not null;unique" json:"name"`
	Author           string    `gorm:"size:255" json:"author"`
	ShortDescription *string   `gorm:"type:text" json:"short_description"`
	LongDescription  *string   `gorm:"type:text" json:"long_description"`
	Language         *string   `gorm:"size:50" json:"language"`
	Hours            *string   `gorm:"size:10" json:"hours"`
	TotalVideo       int       `gorm:"default:0" json:"total_video"`

	// Gross, tax inclusive.
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	DiscountedPrice float64 `gorm:"type:numeric(10,2)" json:"discounted_price"`
	GstPercent      float64 `gorm:"type:numeric(5,2);default:0" json:"gst_percent"`

	CourseType string     `gorm:"size:20;not null;default:'allopen'" json:"course_type"`
	Percentage *float64   `gorm:"type:numeric(5,2)" json:"percentage"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`

	ExpirePolicy string `gorm:"size:20;not null;default:'never'" json:"expire_policy"`
	ExpireDays   *int   `json:"expire_days"`

	IsActive bool `gorm:"default:true" json:"is_active"`
	Deleted  bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
