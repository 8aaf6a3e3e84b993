// internal/kpi/score_test.go
package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNudgeScore(t *testing.T) {
	tests := []struct {
		name      string
		nudged    int
		converted int
		penalty   int
		expected  int
	}{
		{
			name:     "no nudges yields perfect score",
			nudged:   0,
			expected: 100,
		},
		{
			name:      "all converted no penalties",
			nudged:    4,
			converted: 4,
			penalty:   0,
			expected:  100,
		},
		{
			name:      "half converted",
			nudged:    4,
			converted: 2,
			penalty:   0,
			expected:  50,
		},
		{
			name:      "penalty counts double",
			nudged:    4,
			converted: 4,
			penalty:   1,
			expected:  50,
		},
		{
			name:      "penalties can floor the score at zero",
			nudged:    2,
			converted: 1,
			penalty:   3,
			expected:  0,
		},
		{
			name:      "rounds to nearest integer",
			nudged:    3,
			converted: 1,
			penalty:   0,
			expected:  33,
		},
		{
			name:      "rounds up at the midpoint",
			nudged:    8,
			converted: 5,
			penalty:   1,
			expected:  38,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NudgeScore(tt.nudged, tt.converted, tt.penalty))
		})
	}
}

func TestNudgeScore_PenaltyMonotonic(t *testing.T) {
	// Each additional penalty never raises the score.
	prev := NudgeScore(10, 8, 0)
	for penalty := 1; penalty <= 6; penalty++ {
		score := NudgeScore(10, 8, penalty)
		assert.LessOrEqual(t, score, prev)
		assert.GreaterOrEqual(t, score, 0)
		prev = score
	}
}
