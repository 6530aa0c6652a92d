package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PurchaseStatusSuccess = "Success"
	PurchaseStatusFailure = "Failure"

	PaymentModeAdminSkip = "Admin_Skip"
)

// Purchase is the purchase-of-record. It is never deleted on refund; Active
// flips to false and the refund fields are filled in, while the Enrollment row
// is removed. Active plus CourseExpireTime is the single source of truth for
// whether a grant is currently honored.
type Purchase struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID uuid.UUID `gorm:"not null" json:"course_id"`
	UserID   uuid.UUID `gorm:"not null" json:"user_id"`

	CourseName    string `gorm:"size:255" json:"course_name"`
	TransactionID string `gorm:"size:255;not null;index" json:"transaction_id"`
	Status        string `gorm:"size:20;not null" json:"status"`
	PaymentMode   string `gorm:"size:30" json:"payment_mode"`

	CustomerName    string  `gorm:"size:255" json:"customer_name"`
	CustomerEmail   string  `gorm:"size:255" json:"customer_email"`
	CustomerMobile  *string `gorm:"size:20" json:"customer_mobile"`
	CustomerCity    *string `gorm:"size:100" json:"customer_city"`
	CustomerState   *string `gorm:"size:100" json:"customer_state"`
	CustomerCountry *string `gorm:"size:100" json:"customer_country"`

	AmountWithoutGst float64 `gorm:"type:numeric(10,2)" json:"amount_without_gst"`
	Cgst             float64 `gorm:"type:numeric(10,2)" json:"cgst"`
	Sgst             float64 `gorm:"type:numeric(10,2)" json:"sgst"`
	Igst             float64 `gorm:"type:numeric(10,2)" json:"igst"`
	TotalGst         float64 `gorm:"type:numeric(10,2)" json:"total_gst"`
	TotalPaidAmount  float64 `gorm:"type:numeric(10,2)" json:"total_paid_amount"`

	// Assigned exactly once at successful-payment time, never reused.
	InvoiceNumber *string `gorm:"size:30;unique" json:"invoice_number"`
	InvoiceURL    *string `gorm:"size:500" json:"invoice_url"`

	CourseExpireTime *time.Time `json:"course_expire_time"`
	Active           bool       `gorm:"default:true" json:"active"`

	RefundID         *string    `gorm:"size:255" json:"refund_id"`
	RefundStatus     bool       `gorm:"default:false" json:"refund_status"`
	RefundAmount     *float64   `gorm:"type:numeric(10,2)" json:"refund_amount"`
	RefundDate       *time.Time `json:"refund_date"`
	CancelBillNumber *string    `gorm:"size:30;unique" json:"cancel_bill_number"`

	TransactionDate time.Time `gorm:"autoCreateTime" json:"transaction_date"`

	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
