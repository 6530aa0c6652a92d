package handlers

import (
	"time"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/anjiri1684/course_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CourseRequest struct {
	Name             string   `json:"name" validate:"required"`
	Author           string   `json:"author" validate:"required"`
	ShortDescription string   `json:"short_description,omitempty"`
	LongDescription  string   `json:"long_description,omitempty"`
	Language         string   `json:"language,omitempty"`
	Hours            string   `json:"hours,omitempty"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	DiscountedPrice  float64  `json:"discounted_price,omitempty"`
	GstPercent       float64  `json:"gst_percent" validate:"gte=0,lte=100"`
	CourseType       string   `json:"course_type" validate:"required,oneof=allopen percentage timeIntervals"`
	Percentage       *float64 `json:"percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	StartTime        *string  `json:"start_time,omitempty"`
	EndTime          *string  `json:"end_time,omitempty"`
	ExpirePolicy     string   `json:"expire_policy" validate:"required,oneof=never expire_days"`
	ExpireDays       *int     `json:"expire_days,omitempty" validate:"omitempty,gt=0"`
}

// applyCoursePolicy normalizes the policy fields per course type so a course
// can never carry both a completion threshold and a time window.
func applyCoursePolicy(course *models.Course, req CourseRequest) error {
	defaultThreshold := 80.0

	course.CourseType = req.CourseType
	course.Percentage = nil
	course.StartTime = nil
	course.EndTime = nil

	switch req.CourseType {
	case models.CourseTypePercentage:
		threshold := defaultThreshold
		if req.Percentage != nil {
			threshold = *req.Percentage
		}
		course.Percentage = &threshold

	case models.CourseTypeTimeIntervals:
		if req.StartTime == nil || req.EndTime == nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_time and end_time are required for scheduled courses")
		}
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_time must be RFC3339")
		}
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_time must be RFC3339")
		}
		course.StartTime = &start
		course.EndTime = &end
		course.Percentage = &defaultThreshold

	case models.CourseTypeAllOpen:
		course.Percentage = &defaultThreshold
	}

	course.ExpirePolicy = req.ExpirePolicy
	if req.ExpirePolicy == models.ExpirePolicyDays {
		if req.ExpireDays == nil {
			return fiber.NewError(fiber.StatusBadRequest, "expire_days is required for the expire_days policy")
		}
		course.ExpireDays = req.ExpireDays
	} else {
		course.ExpireDays = nil
	}

	return nil
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Course
	if err := database.DB.Where("name = ? AND deleted = ?", req.Name, false).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Course with the same details already exists"})
	}

	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	course := models.Course{
		Name:             req.Name,
		Author:           req.Author,
		ShortDescription: strPtr(req.ShortDescription),
		LongDescription:  strPtr(req.LongDescription),
		Language:         strPtr(req.Language),
		Hours:            strPtr(req.Hours),
		Price:            req.Price,
		DiscountedPrice:  req.DiscountedPrice,
		GstPercent:       req.GstPercent,
	}
	if err := applyCoursePolicy(&course, req); err != nil {
		return err
	}

	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": fiber.StatusOK, "data": course})
}

func UpdateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := database.DB.First(&course, "id = ? AND deleted = ?", c.Params("courseId"), false).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	course.Name = req.Name
	course.Author = req.Author
	course.ShortDescription = strPtr(req.ShortDescription)
	course.LongDescription = strPtr(req.LongDescription)
	course.Language = strPtr(req.Language)
	course.Hours = strPtr(req.Hours)
	course.Price = req.Price
	course.DiscountedPrice = req.DiscountedPrice
	course.GstPercent = req.GstPercent
	if err := applyCoursePolicy(&course, req); err != nil {
		return err
	}

	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "data": course})
}

type courseListItem struct {
	models.Course
	IsEnrolled       bool       `json:"is_enrolled"`
	Active           bool       `json:"active"`
	HasCompleted     bool       `json:"has_completed"`
	CourseExpireTime *time.Time `json:"course_expire_time"`
}

// GetAllCourses lists active courses. When a user id is supplied each course
// carries that user's enrollment and access state, evaluated at request time.
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	userIDParam := c.Query("user_id")

	query := database.DB.Model(&models.Course{}).Where("deleted = ? AND is_active = ?", false, true)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR author ILIKE ? OR language ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count courses"})
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	if userIDParam == "" || userIDParam == "null" {
		return c.JSON(fiber.Map{
			"status":        fiber.StatusOK,
			"courses":       courses,
			"page":          page,
			"page_count":    pageCount(total, limit),
			"total_courses": total,
		})
	}

	userID, err := uuid.Parse(userIDParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var enrollments []models.Enrollment
	database.DB.Where("user_id = ?", userID).Find(&enrollments)
	enrolled := make(map[uuid.UUID]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.CourseID] = true
	}

	now := time.Now()
	items := make([]courseListItem, 0, len(courses))
	for _, course := range courses {
		var totalResources int64
		database.DB.Model(&models.Video{}).Where("course_id = ?", course.ID).Count(&totalResources)

		var progress []models.VideoProgress
		database.DB.Where("user_id = ? AND course_id = ?", userID, course.ID).Find(&progress)

		purchase := latestActivePurchase(userID, course.ID)

		decision := services.EvaluateAccess(purchase, course, progress, int(totalResources), now)

		item := courseListItem{
			Course:       course,
			IsEnrolled:   enrolled[course.ID],
			Active:       decision.Active,
			HasCompleted: decision.HasCompleted,
		}
		if purchase != nil {
			item.CourseExpireTime = purchase.CourseExpireTime
		}
		items = append(items, item)
	}

	return c.JSON(fiber.Map{
		"status":        fiber.StatusOK,
		"courses":       items,
		"page":          page,
		"page_count":    pageCount(total, limit),
		"total_courses": total,
	})
}

func latestActivePurchase(userID, courseID uuid.UUID) *models.Purchase {
	var purchase models.Purchase
	err := database.DB.Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, models.PurchaseStatusSuccess).
		Order("transaction_date DESC").
		First(&purchase).Error
	if err != nil {
		return nil
	}
	return &purchase
}

type videoWithProgress struct {
	models.Video
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// GetPurchasedCourseDetails returns the full content listing for an enrolled
// user, including per-video progress and today's projected visibility window
// for scheduled courses.
func GetPurchasedCourseDetails(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not enrolled in this course."})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found."})
	}

	var videos []models.Video
	if err := database.DB.Where("course_id = ?", courseID).Order("display_order").Find(&videos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch course content"})
	}
	if len(videos) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No resources available for this course."})
	}

	var progress []models.VideoProgress
	database.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&progress)
	progressByVideo := make(map[uuid.UUID]models.VideoProgress, len(progress))
	for _, vp := range progress {
		progressByVideo[vp.VideoID] = vp
	}

	now := time.Now()
	purchase := latestActivePurchase(userID, courseID)
	decision := services.EvaluateAccess(purchase, course, progress, len(videos), now)

	resources := make([]videoWithProgress, 0, len(videos))
	for _, v := range videos {
		item := videoWithProgress{Video: v}
		if vp, ok := progressByVideo[v.ID]; ok {
			item.Progress = vp.Progress
			item.Completed = vp.Completed
		}
		resources = append(resources, item)
	}

	return c.JSON(fiber.Map{
		"status": fiber.StatusOK,
		"course_details": fiber.Map{
			"course_id":            course.ID,
			"current_time":         now,
			"name":                 course.Name,
			"author":               course.Author,
			"course_type":          course.CourseType,
			"percentage":           course.Percentage,
			"window_start":         decision.WindowStart,
			"window_end":           decision.WindowEnd,
			"in_window":            decision.InWindow,
			"active":               decision.Active,
			"has_completed":        decision.HasCompleted,
			"course_expire_time":   decision.ExpiresAt,
			"percentage_completed": enrollment.PercentageCompleted,
			"resources":            resources,
		},
	})
}
