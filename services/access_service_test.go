package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/course_academy/models"
	"github.com/stretchr/testify/assert"
)

func activePurchase(expireAt *time.Time) *models.Purchase {
	return &models.Purchase{Active: true, CourseExpireTime: expireAt}
}

func completedProgress(n int) []models.VideoProgress {
	records := make([]models.VideoProgress, n)
	for i := range records {
		records[i] = models.VideoProgress{Progress: 100, Completed: true}
	}
	return records
}

func TestEvaluateAccessNoPurchase(t *testing.T) {
	course := models.Course{CourseType: models.CourseTypeAllOpen}

	d := EvaluateAccess(nil, course, nil, 0, time.Now())

	assert.False(t, d.Active)
}

func TestEvaluateAccessExpiryIsLazy(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	course := models.Course{CourseType: models.CourseTypeAllOpen}

	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	// Stored Active=true must not be trusted past the expiry timestamp.
	assert.False(t, EvaluateAccess(activePurchase(&past), course, nil, 0, now).Active)
	assert.True(t, EvaluateAccess(activePurchase(&future), course, nil, 0, now).Active)
	assert.True(t, EvaluateAccess(activePurchase(nil), course, nil, 0, now).Active)

	// Expiry boundary is inclusive: at the exact instant the grant is gone.
	assert.False(t, EvaluateAccess(activePurchase(&now), course, nil, 0, now).Active)
}

func TestEvaluateAccessPercentageThreshold(t *testing.T) {
	threshold := 80.0
	course := models.Course{CourseType: models.CourseTypePercentage, Percentage: &threshold}
	now := time.Now()

	cases := []struct {
		name      string
		completed int
		total     int
		want      bool
	}{
		{"exactly at threshold", 4, 5, true},
		{"just below threshold", 7999, 10000, false},
		{"all completed", 5, 5, true},
		{"none completed", 0, 5, false},
		{"no resources", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := EvaluateAccess(activePurchase(nil), course, completedProgress(tc.completed), tc.total, now)
			assert.Equal(t, tc.want, d.HasCompleted)
		})
	}
}

func TestEvaluateAccessTimeWindow(t *testing.T) {
	// Stored on an arbitrary old date; only the time-of-day matters.
	start := time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2023, 5, 1, 17, 0, 0, 0, time.UTC)
	course := models.Course{
		CourseType: models.CourseTypeTimeIntervals,
		StartTime:  &start,
		EndTime:    &end,
	}

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one minute before opening", day.Add(8*time.Hour + 59*time.Minute), false},
		{"at opening", day.Add(9 * time.Hour), true},
		{"mid window", day.Add(13 * time.Hour), true},
		{"at close", day.Add(17 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := EvaluateAccess(activePurchase(nil), course, nil, 0, tc.now)
			assert.Equal(t, tc.want, d.InWindow)
			if assert.NotNil(t, d.WindowStart) {
				assert.Equal(t, tc.now.Day(), d.WindowStart.Day(), "window must be projected onto today")
			}
		})
	}
}

func TestProjectOntoToday(t *testing.T) {
	stored := time.Date(2020, 1, 1, 14, 30, 15, 0, time.UTC)
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)

	projected := ProjectOntoToday(stored, now)

	assert.Equal(t, time.Date(2025, 6, 20, 14, 30, 15, 0, time.UTC), projected)
}
