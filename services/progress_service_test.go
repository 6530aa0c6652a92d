package services

import (
	"testing"

	"github.com/anjiri1684/course_academy/models"
	"github.com/stretchr/testify/assert"
)

func TestAggregateCourseProgress(t *testing.T) {
	cases := []struct {
		name          string
		progress      []float64
		wantPercent   float64
		wantCompleted bool
	}{
		{"empty", nil, 0, false},
		{"all done", []float64{100, 100, 100}, 100, true},
		{"partial", []float64{100, 50, 0}, 50, false},
		{"nearly done", []float64{100, 100, 99}, 99.66666666666667, false},
		{"single video done", []float64{100}, 100, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := make([]models.VideoProgress, len(tc.progress))
			for i, p := range tc.progress {
				records[i] = models.VideoProgress{Progress: p}
			}

			percent, completed := AggregateCourseProgress(records)

			assert.InDelta(t, tc.wantPercent, percent, 0.0001)
			assert.Equal(t, tc.wantCompleted, completed)
		})
	}
}
