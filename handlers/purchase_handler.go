package handlers

import (
	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetAllCoursePurchases lists purchase records with search and pagination,
// optionally scoped to one user.
func GetAllCoursePurchases(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	sortBy := c.Query("sort_by", "transaction_date")
	order := c.Query("order", "desc")
	userID := c.Query("user_id")

	query := database.DB.Model(&models.Purchase{})

	if userID != "" && userID != "null" {
		uid, err := uuid.Parse(userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
		}
		query = query.Where("user_id = ?", uid)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"customer_name ILIKE ? OR customer_email ILIKE ? OR transaction_id ILIKE ? OR invoice_number ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count purchases"})
	}

	var purchases []models.Purchase
	err := query.Order(sortColumn(sortBy, order, []string{"transaction_date", "total_paid_amount", "customer_name", "invoice_number"})).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchases"})
	}

	return c.JSON(fiber.Map{
		"payments":       purchases,
		"page":           page,
		"page_count":     pageCount(total, limit),
		"total_payments": total,
	})
}

// TogglePurchaseActive flips the Active flag on a purchase. Expiry still wins
// at access-check time regardless of this flag.
func TogglePurchaseActive(c *fiber.Ctx) error {
	var purchase models.Purchase
	if err := database.DB.First(&purchase, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	purchase.Active = !purchase.Active
	if err := database.DB.Save(&purchase).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "purchase": purchase})
}

// GetEnrolledCourses returns the courses a user currently holds an
// enrollment for.
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var enrollments []models.Enrollment
	if err := database.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	if len(enrollments) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No courses found for this user"})
	}

	courseIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	var courses []models.Course
	if err := database.DB.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrolled courses"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "data": courses})
}
