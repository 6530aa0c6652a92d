package handlers

import (
	"errors"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/anjiri1684/course_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VideoProgressRequest struct {
	UserID   string  `json:"user_id" validate:"required,uuid"`
	VideoID  string  `json:"video_id" validate:"required,uuid"`
	CourseID string  `json:"course_id" validate:"required,uuid"`
	Progress float64 `json:"progress" validate:"gte=0,lte=100"`
}

// UpdateVideoProgress records playback progress and, as a side effect,
// re-aggregates the course completion onto the enrollment.
func UpdateVideoProgress(c *fiber.Ctx) error {
	var req VideoProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := services.UpsertVideoProgress(
		uuid.MustParse(req.UserID),
		uuid.MustParse(req.VideoID),
		uuid.MustParse(req.CourseID),
		req.Progress,
	)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotMonotonic) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update video progress"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "message": "Video progress updated successfully"})
}

type VideoRequest struct {
	CourseID    string `json:"course_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Chapter     string `json:"chapter,omitempty"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=video document"`
	Order       int    `json:"order,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

func CreateVideo(c *fiber.Ctx) error {
	var req VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := uuid.MustParse(req.CourseID)
	var course models.Course
	if err := database.DB.First(&course, "id = ? AND deleted = ?", courseID, false).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	strPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	videoType := req.Type
	if videoType == "" {
		videoType = "video"
	}

	video := models.Video{
		CourseID:    courseID,
		Title:       req.Title,
		Description: strPtr(req.Description),
		Chapter:     strPtr(req.Chapter),
		Type:        videoType,
		Order:       req.Order,
		VideoURL:    strPtr(req.VideoURL),
	}
	if err := database.DB.Create(&video).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create video"})
	}

	database.DB.Model(&course).Update("total_video", course.TotalVideo+1)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": fiber.StatusOK, "video": video})
}

func GetVideosByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	var videos []models.Video
	if err := database.DB.Where("course_id = ? AND is_active = ?", courseID, true).Order("display_order").Find(&videos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch videos"})
	}

	return c.JSON(fiber.Map{"status": fiber.StatusOK, "videos": videos, "total_video": len(videos)})
}
