package handlers

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/anjiri1684/course_academy/notifications"
	"github.com/anjiri1684/course_academy/payments"
	"github.com/anjiri1684/course_academy/services"
	"github.com/anjiri1684/course_academy/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateOrderRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	UserID   string `json:"user_id" validate:"required,uuid"`
	Currency string `json:"currency,omitempty"`
}

type CustomerDetails struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Mobile      string `json:"mobile,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state" validate:"required"`
	Country     string `json:"country,omitempty"`
	PaymentMode string `json:"payment_mode,omitempty"`
}

// CreateOrder registers a gateway order for a checkout. Double purchases are
// rejected up front: one active enrollment per (user, course).
func CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := uuid.MustParse(req.CourseID)
	userID := uuid.MustParse(req.UserID)

	var existing models.Enrollment
	if err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You already enrolled in this course. Please refresh the page to view content.",
		})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ? AND deleted = ?", courseID, false).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	receipt := utils.GenerateReceiptID(userID, courseID)
	secret, err := utils.GenerateOrderSecret()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	providerOrder, err := payments.CreateRazorpayOrder(course.Price, currency, receipt)
	if err != nil {
		log.Printf("🔥 Razorpay order creation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Something went wrong!"})
	}

	order := models.Order{
		CourseID:        courseID,
		UserID:          userID,
		Amount:          course.Price,
		Currency:        currency,
		ProviderOrderID: providerOrder.ID,
		SecretKey:       secret,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save order"})
	}

	return c.JSON(fiber.Map{
		"status":      fiber.StatusOK,
		"success":     true,
		"msg":         "Order Created",
		"order_id":    providerOrder.ID,
		"course_name": course.Name,
		"amount":      course.Price,
	})
}

func GetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	var order models.Order
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "success": true, "order": order})
}

// GetAllOrders lists orders with search and pagination for the admin panel.
func GetAllOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	sortBy := c.Query("sort_by", "created_at")
	order := c.Query("order", "desc")

	query := database.DB.Model(&models.Order{}).Preload("Course").Preload("User")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Joins("LEFT JOIN courses ON courses.id = orders.course_id").
			Where("users.full_name ILIKE ? OR courses.name ILIKE ? OR orders.provider_order_id ILIKE ?",
				pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count orders"})
	}

	var orders []models.Order
	err := query.Order("orders." + sortColumn(sortBy, order, []string{"created_at", "amount", "status"})).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}

	return c.JSON(fiber.Map{
		"orders":       orders,
		"page":         page,
		"page_count":   pageCount(total, limit),
		"total_orders": total,
	})
}

type VerifyPaymentRequest struct {
	RazorpayPaymentID string          `json:"razorpay_payment_id" validate:"required"`
	RazorpayOrderID   string          `json:"razorpay_order_id" validate:"required"`
	RazorpaySignature string          `json:"razorpay_signature" validate:"required"`
	CourseID          string          `json:"course_id" validate:"required,uuid"`
	UserID            string          `json:"user_id" validate:"required,uuid"`
	CustomerDetails   CustomerDetails `json:"customer_details" validate:"required"`
}

// VerifyPayment turns a gateway callback into the durable purchase-of-record.
// A bad signature is recorded as a Failure purchase for audit and never
// produces an enrollment.
func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := uuid.MustParse(req.CourseID)
	userID := uuid.MustParse(req.UserID)

	var order models.Order
	if err := database.DB.First(&order, "provider_order_id = ?", req.RazorpayOrderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found for this payment"})
	}

	if !payments.VerifyRazorpaySignature(order.SecretKey, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		failure := models.Purchase{
			CourseID:      courseID,
			UserID:        userID,
			TransactionID: req.RazorpayPaymentID,
			Status:        models.PurchaseStatusFailure,
			CustomerName:  req.CustomerDetails.Name,
			CustomerEmail: req.CustomerDetails.Email,
		}
		if err := database.DB.Create(&failure).Error; err != nil {
			log.Printf("🔥 Failed to record signature-failure purchase: %v", err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid signature"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	paymentMode := req.CustomerDetails.PaymentMode
	if paymentMode == "" {
		paymentMode = "Razorpay"
	}

	purchase, err := fulfillPurchase(course, userID, req.RazorpayPaymentID, paymentMode, req.CustomerDetails)
	if err != nil {
		log.Printf("🔥 Error finalizing purchase for order %s: %v", req.RazorpayOrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize purchase"})
	}

	if err := database.DB.Model(&order).Update("status", "paid").Error; err != nil {
		log.Printf("🔥 Failed to mark order %s as paid: %v", order.ID, err)
	}

	emailErr := dispatchInvoice(purchase, course, req.CustomerDetails)

	resp := fiber.Map{
		"status":     fiber.StatusOK,
		"success":    true,
		"message":    "Payment verified, course purchased, and user enrolled successfully.",
		"email_sent": emailErr == nil,
	}
	if emailErr != nil {
		resp["email_error"] = "Invoice email could not be sent. The enrollment is confirmed."
	}
	return c.JSON(resp)
}

type SkipOrderRequest struct {
	CourseID        string          `json:"course_id" validate:"required,uuid"`
	UserID          string          `json:"user_id" validate:"required,uuid"`
	CustomerDetails CustomerDetails `json:"customer_details" validate:"required"`
}

// CreateSkipOrder is the operator grant path: no gateway involved, but the
// same purchase, enrollment, invoice and email side effects.
func CreateSkipOrder(c *fiber.Ctx) error {
	var req SkipOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := uuid.MustParse(req.CourseID)
	userID := uuid.MustParse(req.UserID)

	var existing models.Enrollment
	if err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You are already enrolled in this course."})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ? AND deleted = ?", courseID, false).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	syntheticID := utils.GenerateSkipOrderID(userID, courseID)

	order := models.Order{
		CourseID:        courseID,
		UserID:          userID,
		Amount:          course.Price,
		Currency:        "INR",
		ProviderOrderID: syntheticID,
		Status:          "paid",
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save order"})
	}

	purchase, err := fulfillPurchase(course, userID, syntheticID, models.PaymentModeAdminSkip, req.CustomerDetails)
	if err != nil {
		log.Printf("🔥 Error finalizing skip-payment purchase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize purchase"})
	}

	emailErr := dispatchInvoice(purchase, course, req.CustomerDetails)

	resp := fiber.Map{
		"status":     fiber.StatusOK,
		"success":    true,
		"message":    "Course granted and user enrolled successfully.",
		"email_sent": emailErr == nil,
	}
	if emailErr != nil {
		resp["email_error"] = "Invoice email could not be sent. The enrollment is confirmed."
	}
	return c.JSON(resp)
}

// fulfillPurchase upserts the customer snapshot, computes the tax breakdown
// and invoice number, and saves Purchase plus Enrollment in one transaction so
// either both exist or neither does.
func fulfillPurchase(course models.Course, userID uuid.UUID, transactionID, paymentMode string, customer CustomerDetails) (models.Purchase, error) {
	now := time.Now()

	if err := upsertCustomer(userID, customer); err != nil {
		return models.Purchase{}, err
	}

	breakdown := services.ComputeGst(course.Price, course.GstPercent, customer.State)

	var expireTime *time.Time
	if course.ExpirePolicy == models.ExpirePolicyDays && course.ExpireDays != nil && *course.ExpireDays > 0 {
		t := now.AddDate(0, 0, *course.ExpireDays)
		expireTime = &t
	}

	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	purchase := models.Purchase{
		CourseID:         course.ID,
		CourseName:       course.Name,
		UserID:           userID,
		TransactionID:    transactionID,
		Status:           models.PurchaseStatusSuccess,
		PaymentMode:      paymentMode,
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerMobile:   strPtr(customer.Mobile),
		CustomerCity:     strPtr(customer.City),
		CustomerState:    strPtr(customer.State),
		CustomerCountry:  strPtr(customer.Country),
		AmountWithoutGst: breakdown.AmountWithoutGst,
		Cgst:             breakdown.Cgst,
		Sgst:             breakdown.Sgst,
		Igst:             breakdown.Igst,
		TotalGst:         breakdown.TotalGst,
		TotalPaidAmount:  breakdown.TotalPaid,
		CourseExpireTime: expireTime,
		Active:           true,
		TransactionDate:  now,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		invoiceNumber, err := services.NextInvoiceNumber(tx, services.InvoicePrefix, now)
		if err != nil {
			return err
		}
		purchase.InvoiceNumber = &invoiceNumber

		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{
			CourseID:   course.ID,
			UserID:     userID,
			EnrolledAt: now,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return models.Purchase{}, err
	}

	return purchase, nil
}

func upsertCustomer(userID uuid.UUID, customer CustomerDetails) error {
	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	var user models.User
	err := database.DB.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:          userID,
			FullName:    customer.Name,
			Email:       customer.Email,
			PhoneNumber: strPtr(customer.Mobile),
			City:        strPtr(customer.City),
			State:       strPtr(customer.State),
			Country:     strPtr(customer.Country),
		}
		return database.DB.Create(&user).Error
	}
	if err != nil {
		return err
	}

	user.FullName = customer.Name
	user.Email = customer.Email
	if customer.City != "" {
		user.City = strPtr(customer.City)
	}
	if customer.State != "" {
		user.State = strPtr(customer.State)
	}
	return database.DB.Save(&user).Error
}

// dispatchInvoice renders the invoice PDF, archives a copy, emails it and
// removes the transient file. Failures here never unwind the purchase.
func dispatchInvoice(purchase models.Purchase, course models.Course, customer CustomerDetails) error {
	invoice := services.BuildInvoiceModel(purchase, course)

	pdfPath, err := services.GenerateInvoicePDF(invoice)
	if err != nil {
		log.Printf("🔥 Failed to generate invoice PDF for %s: %v", invoice.InvoiceNumber, err)
		return err
	}
	defer os.Remove(pdfPath)

	if url, err := services.ArchiveInvoicePDF(pdfPath, invoice.InvoiceNumber); err != nil {
		log.Printf("⚠️ Failed to archive invoice %s: %v", invoice.InvoiceNumber, err)
	} else {
		database.DB.Model(&purchase).Update("invoice_url", url)
	}

	subject := "🎉 Congratulations! Your Enrollment is Confirmed! Welcome to " + course.Name + "!"
	body := enrollmentEmailBody(customer.Name, course.Name, purchase)

	err = notifications.SendEmailWithAttachments(customer.Name, customer.Email, subject, body,
		[]notifications.Attachment{{Filename: "invoice_" + invoice.InvoiceNumber + ".pdf", Path: pdfPath}})
	if err != nil {
		log.Printf("🔥 Failed to send invoice email to %s: %v", customer.Email, err)
		return err
	}

	return nil
}
