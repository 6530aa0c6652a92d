package services

import (
	"fmt"
	"log"

	"github.com/anjiri1684/course_academy/database"
	"github.com/anjiri1684/course_academy/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrProgressNotMonotonic is returned when a client reports less progress
// than what is already stored.
var ErrProgressNotMonotonic = fmt.Errorf("progress should be greater than current video progress")

// UpsertVideoProgress records playback progress for one video. Progress only
// moves forward, and every accepted update re-aggregates course completion
// onto the enrollment.
func UpsertVideoProgress(userID, videoID, courseID uuid.UUID, progress float64) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}

	var record models.VideoProgress
	err := database.DB.Where("user_id = ? AND video_id = ?", userID, videoID).First(&record).Error
	switch {
	case err == nil:
		if progress <= record.Progress {
			return ErrProgressNotMonotonic
		}
		record.Progress = progress
		record.Completed = progress >= 100
		if err := database.DB.Save(&record).Error; err != nil {
			return err
		}
	case err == gorm.ErrRecordNotFound:
		record = models.VideoProgress{
			UserID:    userID,
			VideoID:   videoID,
			CourseID:  courseID,
			Progress:  progress,
			Completed: progress >= 100,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			return err
		}
	default:
		return err
	}

	CheckCourseCompletion(userID, courseID)
	return nil
}

// CheckCourseCompletion recomputes the course-level completion percentage and
// flips CompletedCourseStatus once every tracked video sits at 100.
func CheckCourseCompletion(userID, courseID uuid.UUID) {
	var records []models.VideoProgress
	if err := database.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error; err != nil {
		log.Printf("🔥 Error loading video progress for completion check: %v", err)
		return
	}
	if len(records) == 0 {
		return
	}

	percentage, allCompleted := AggregateCourseProgress(records)

	updates := map[string]interface{}{"percentage_completed": percentage}
	if allCompleted {
		updates["completed_course_status"] = true
	}

	err := database.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates).Error
	if err != nil {
		log.Printf("🔥 Error updating enrollment completion: %v", err)
	}
}

// AggregateCourseProgress averages per-video progress and reports whether
// every tracked video has been fully watched.
func AggregateCourseProgress(records []models.VideoProgress) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}

	total := 0.0
	allCompleted := true
	for _, r := range records {
		total += r.Progress
		if r.Progress != 100 {
			allCompleted = false
		}
	}
	return total / float64(len(records)), allCompleted
}
