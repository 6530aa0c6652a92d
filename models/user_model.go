package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"size:255;not null" json:"full_name"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	Password    string    `gorm:"size:255" json:"-"`
	Role        string    `gorm:"size:20;not null;default:'student'" json:"role"`
	PhoneNumber *string   `gorm:"size:20" json:"phone_number"`

	City    *string `gorm:"size:100" json:"city"`
	State   *string `gorm:"size:100" json:"state"`
	Country *string `gorm:"size:100" json:"country"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
