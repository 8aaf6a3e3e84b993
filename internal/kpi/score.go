// internal/kpi/score.go
package kpi

import "math"

// PenaltyWeight makes a low-quality submission twice as costly as a neutral
// non-conversion, to disincentivize indiscriminate nudging.
const PenaltyWeight = 2

// NudgeScore computes the Level-1 nudge quality score.
//
// An actor with no nudges scores a neutral 100. Otherwise the score is
// round((converted - penalty*2) / nudged * 100), saturating at 0 so it never
// goes negative.
func NudgeScore(nudged, converted, penalty int) int {
	if nudged == 0 {
		return 100
	}
	raw := float64(converted-penalty*PenaltyWeight) / float64(nudged) * 100
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	return score
}
