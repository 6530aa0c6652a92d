package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the transient pre-payment record. Once payment succeeds it is
// superseded by a Purchase; an Order with no Purchase is abandoned and kept as-is.
type Order struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"not null" json:"course_id"`
	UserID   uuid.UUID `gorm:"not null" json:"user_id"`

	Amount   float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string  `gorm:"size:3;default:'INR'" json:"currency"`

	ProviderOrderID string `gorm:"size:255;unique;not null" json:"provider_order_id"`
	// One-time HMAC secret issued at order creation and checked during verification.
	SecretKey string `gorm:"size:64" json:"-"`

	Status string `gorm:"size:20;not null;default:'created'" json:"status"`

	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
