package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/anjiri1684/course_academy/notifications"
	"github.com/anjiri1684/course_academy/payments"
	"github.com/anjiri1684/course_academy/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RefundRequest struct {
	RefundAmount float64 `json:"refund_amount" validate:"required,gt=0"`
}

// InitiateRefund reverses a captured payment. The purchase row survives with
// Active=false and the refund audit trail; the enrollment row is hard-deleted.
func InitiateRefund(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")

	var req RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var purchase models.Purchase
	if err := database.DB.First(&purchase, "transaction_id = ?", transactionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase not found"})
	}

	if purchase.RefundStatus {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Refund has already been processed"})
	}

	paymentDetails, err := payments.FetchRazorpayPayment(transactionID)
	if err != nil {
		log.Printf("🔥 Failed to fetch payment %s: %v", transactionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not fetch payment details from gateway"})
	}

	refundMinor := int64(req.RefundAmount * 100)
	if refundMinor > paymentDetails.Amount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Refund amount exceeds the captured amount of ₹%.2f", float64(paymentDetails.Amount)/100),
		})
	}

	if paymentDetails.Status == "authorized" {
		captured, err := payments.CaptureRazorpayPayment(transactionID, paymentDetails.Amount)
		if err != nil {
			log.Printf("🔥 Capture before refund failed for %s: %v", transactionID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to capture the payment. Refund cannot be initiated."})
		}
		if captured.Status != "captured" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment capture is still in progress. Please try again shortly."})
		}
	} else if paymentDetails.Status != "captured" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment is not in a refundable state"})
	}

	now := time.Now()

	// The cancel-bill number is reserved in its own short transaction so the
	// counter row is not held locked across the gateway call. An aborted
	// refund leaves a gap in the CNC sequence, which is fine.
	var cancelBillNumber string
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		cancelBillNumber, err = services.NextInvoiceNumber(tx, services.CancelBillPrefix, now)
		return err
	})
	if err != nil {
		log.Printf("🔥 Failed to reserve cancel bill number for %s: %v", transactionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initiate refund"})
	}

	refund, err := payments.RefundRazorpayPayment(transactionID, refundMinor, map[string]string{
		"cancelBillNumber": cancelBillNumber,
	})
	if err != nil {
		log.Printf("🔥 Gateway refund failed for %s: %v", transactionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fmt.Sprintf("Error initiating refund: %v", err)})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		purchase.RefundID = &refund.ID
		purchase.RefundStatus = true
		purchase.CancelBillNumber = &cancelBillNumber
		purchase.RefundAmount = &req.RefundAmount
		purchase.RefundDate = &now
		purchase.Active = false
		if err := tx.Save(&purchase).Error; err != nil {
			return err
		}

		result := tx.Where("course_id = ? AND user_id = ?", purchase.CourseID, purchase.UserID).
			Delete(&models.Enrollment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			log.Printf("⚠️ No enrollment record found to delete for purchase %s", purchase.ID)
		}
		return nil
	})
	if err != nil {
		log.Printf("🔥 Error recording refund %s for %s: %v", refund.ID, transactionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("Error initiating refund: %v", err)})
	}

	go notifications.SendEmail(purchase.CustomerName, purchase.CustomerEmail,
		"Refund Processed Successfully",
		refundEmailBody(purchase.CustomerName, req.RefundAmount, cancelBillNumber))

	return c.JSON(fiber.Map{
		"success":            true,
		"message":            "Refund initiated successfully",
		"refund_id":          refund.ID,
		"cancel_bill_number": cancelBillNumber,
	})
}

// GetAllRefunds lists refunded purchases with search and pagination.
func GetAllRefunds(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	sortBy := c.Query("sort_by", "refund_date")
	order := c.Query("order", "desc")

	query := database.DB.Model(&models.Purchase{}).Where("refund_status = ?", true)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"course_name ILIKE ? OR customer_name ILIKE ? OR refund_id ILIKE ? OR cancel_bill_number ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count refunds"})
	}

	var refunds []models.Purchase
	err := query.Order(sortColumn(sortBy, order, []string{"refund_date", "refund_amount", "customer_name", "course_name"})).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&refunds).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch refunds"})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"data":          refunds,
		"page":          page,
		"page_count":    pageCount(total, limit),
		"total_refunds": total,
	})
}
