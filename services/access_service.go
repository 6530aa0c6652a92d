package services

import (
	"time"

	"github.com/anjiri1684/course_academy/models"
)

// AccessDecision is the result of evaluating one (user, course) pair at a
// point in time.
type AccessDecision struct {
	Active       bool       `json:"active"`
	HasCompleted bool       `json:"has_completed"`
	WindowStart  *time.Time `json:"window_start,omitempty"`
	WindowEnd    *time.Time `json:"window_end,omitempty"`
	InWindow     bool       `json:"in_window"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// EvaluateAccess decides whether the grant behind purchase is honored at now.
// Expiry is evaluated lazily here on every check; the stored Active flag is
// never trusted past CourseExpireTime.
func EvaluateAccess(purchase *models.Purchase, course models.Course, progress []models.VideoProgress, totalResources int, now time.Time) AccessDecision {
	decision := AccessDecision{InWindow: true}

	if purchase != nil {
		decision.Active = purchase.Active
		decision.ExpiresAt = purchase.CourseExpireTime
		if purchase.CourseExpireTime != nil && !now.Before(*purchase.CourseExpireTime) {
			decision.Active = false
		}
	}

	switch course.CourseType {
	case models.CourseTypePercentage:
		threshold := 80.0
		if course.Percentage != nil {
			threshold = *course.Percentage
		}
		decision.HasCompleted = completionPercent(progress, totalResources) >= threshold

	case models.CourseTypeTimeIntervals:
		if course.StartTime != nil && course.EndTime != nil {
			start := ProjectOntoToday(*course.StartTime, now)
			end := ProjectOntoToday(*course.EndTime, now)
			decision.WindowStart = &start
			decision.WindowEnd = &end
			decision.InWindow = !now.Before(start) && now.Before(end)
		}
	}

	return decision
}

// ProjectOntoToday keeps only the time-of-day of stored and reattaches it to
// now's date. The stored date component is deliberately ignored: scheduled
// courses open the same window every day.
func ProjectOntoToday(stored, now time.Time) time.Time {
	h, m, s := stored.Clock()
	return time.Date(now.Year(), now.Month(), now.Day(), h, m, s, 0, now.Location())
}

func completionPercent(progress []models.VideoProgress, totalResources int) float64 {
	if totalResources == 0 {
		return 0
	}
	completed := 0
	for _, vp := range progress {
		if vp.Completed {
			completed++
		}
	}
	return float64(completed) / float64(totalResources) * 100
}
