package handlers

import (
	"testing"
	"time"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefundRejectedWhenAlreadyProcessed(t *testing.T) {
	t.Skip("Integration test - requires database")

	openTestDB(t)
	course, user := seedCourseAndUser(t)

	refundAmount := 1180.0
	refundDate := time.Now().Add(-time.Hour)
	cancelBill := "CNC-20250301"
	purchase := models.Purchase{
		CourseID:         course.ID,
		UserID:           user.ID,
		CourseName:       course.Name,
		TransactionID:    "pay_" + uuid.NewString(),
		Status:           models.PurchaseStatusSuccess,
		CustomerName:     user.FullName,
		CustomerEmail:    user.Email,
		TotalPaidAmount:  course.Price,
		Active:           false,
		RefundStatus:     true,
		RefundAmount:     &refundAmount,
		RefundDate:       &refundDate,
		CancelBillNumber: &cancelBill,
		TransactionDate:  time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, database.DB.Create(&purchase).Error)

	app := fiber.New()
	app.Post("/refunds/:transactionId", InitiateRefund)

	resp, err := app.Test(jsonRequest("POST", "/refunds/"+purchase.TransactionID, fiber.Map{
		"refund_amount": 1180,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The rejection happens before any gateway or counter activity, so the
	// stored refund record is untouched.
	var reloaded models.Purchase
	require.NoError(t, database.DB.First(&reloaded, "id = ?", purchase.ID).Error)
	assert.Equal(t, cancelBill, *reloaded.CancelBillNumber)
	assert.Equal(t, refundAmount, *reloaded.RefundAmount)
}

func TestRefundDeletesEnrollmentAndRejectsRepeat(t *testing.T) {
	t.Skip("Integration test - requires database and a gateway sandbox")

	openTestDB(t)
	course, user := seedCourseAndUser(t)

	// TransactionID must reference a captured payment in the sandbox account.
	purchase := models.Purchase{
		CourseID:        course.ID,
		UserID:          user.ID,
		CourseName:      course.Name,
		TransactionID:   "pay_sandbox_captured",
		Status:          models.PurchaseStatusSuccess,
		CustomerName:    user.FullName,
		CustomerEmail:   user.Email,
		TotalPaidAmount: course.Price,
		Active:          true,
		TransactionDate: time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, database.DB.Create(&purchase).Error)
	require.NoError(t, database.DB.Create(&models.Enrollment{CourseID: course.ID, UserID: user.ID}).Error)

	app := fiber.New()
	app.Post("/refunds/:transactionId", InitiateRefund)

	resp, err := app.Test(jsonRequest("POST", "/refunds/"+purchase.TransactionID, fiber.Map{
		"refund_amount": course.Price,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.Purchase
	require.NoError(t, database.DB.First(&reloaded, "id = ?", purchase.ID).Error)
	assert.False(t, reloaded.Active)
	assert.True(t, reloaded.RefundStatus)
	require.NotNil(t, reloaded.CancelBillNumber)
	assert.Contains(t, *reloaded.CancelBillNumber, "CNC-")

	// The enrollment is hard-deleted while the purchase row survives.
	var enrollments int64
	database.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).
		Count(&enrollments)
	assert.Zero(t, enrollments)

	repeat, err := app.Test(jsonRequest("POST", "/refunds/"+purchase.TransactionID, fiber.Map{
		"refund_amount": course.Price,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, repeat.StatusCode)
}
