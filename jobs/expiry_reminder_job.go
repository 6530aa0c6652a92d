package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/anjiri1684/course_academy/notifications"
)

// SendExpiryReminders emails users whose course access lapses within the next
// three days. It only notifies; access checks evaluate expiry themselves at
// read time, so nothing is flipped off here.
func SendExpiryReminders() {
	log.Println("Running job: SendExpiryReminders...")

	now := time.Now()
	upperBound := now.Add(72 * time.Hour)

	var expiring []models.Purchase
	err := database.DB.
		Where("active = ? AND refund_status = ? AND course_expire_time BETWEEN ? AND ?",
			true, false, now, upperBound).
		Find(&expiring).Error
	if err != nil {
		log.Printf("Error checking for expiring purchases: %v", err)
		return
	}

	if len(expiring) == 0 {
		return
	}

	for _, purchase := range expiring {
		emailSubject := "Your course access expires soon"
		emailBody := fmt.Sprintf(
			"<h1>Access Expiring</h1><p>Hi %s,</p><p>Your access to <b>%s</b> expires on %s. Finish any remaining lessons before then!</p>",
			purchase.CustomerName,
			purchase.CourseName,
			purchase.CourseExpireTime.Format("January 02, 2006"),
		)

		go notifications.SendEmail(purchase.CustomerName, purchase.CustomerEmail, emailSubject, emailBody)
	}
}
