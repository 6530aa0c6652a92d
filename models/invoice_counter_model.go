package models

import "time"

// InvoiceCounter backs invoice and cancel-bill numbering. One row per
// (prefix, period); Seq is bumped with a conditional upsert inside the same
// transaction that saves the Purchase, so two payments in the same period can
// never be handed the same sequence number.
type InvoiceCounter struct {
	ID        uint   `gorm:"primary_key" json:"id"`
	Prefix    string `gorm:"size:10;not null;uniqueIndex:idx_counter_prefix_period" json:"prefix"`
	PeriodKey string `gorm:"size:10;not null;uniqueIndex:idx_counter_prefix_period" json:"period_key"`
	Seq       int    `gorm:"not null;default:0" json:"seq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
