package services

import (
	"fmt"
	"time"

	"github.com/anjiri1684/course_academy/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	InvoicePrefix    = "COS"
	CancelBillPrefix = "CNC"
)

// PeriodKey is the YYYYMM bucket invoice sequences are scoped to.
func PeriodKey(t time.Time) string {
	return t.Format("200601")
}

// FormatInvoiceNumber renders "{prefix}-{period}{seq}" with the sequence
// zero-padded to two digits.
func FormatInvoiceNumber(prefix, periodKey string, seq int) string {
	return fmt.Sprintf("%s-%s%02d", prefix, periodKey, seq)
}

// NextInvoiceNumber hands out the next number for (prefix, period) by bumping
// a per-period counter row atomically. Run it inside the same transaction that
// saves the purchase so an aborted checkout does not burn a number for a
// half-written record while concurrent checkouts still never collide.
func NextInvoiceNumber(tx *gorm.DB, prefix string, now time.Time) (string, error) {
	period := PeriodKey(now)

	counter := models.InvoiceCounter{Prefix: prefix, PeriodKey: period, Seq: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prefix"}, {Name: "period_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"seq": gorm.Expr("invoice_counters.seq + 1")}),
	}).Clauses(clause.Returning{Columns: []clause.Column{{Name: "seq"}}}).
		Create(&counter).Error
	if err != nil {
		return "", fmt.Errorf("failed to advance %s counter: %v", prefix, err)
	}

	return FormatInvoiceNumber(prefix, period, counter.Seq), nil
}
