// internal/models/kpi.go
package models

// KPIStats is the derived nudge-quality record for a Level-1 actor.
// It is computed on demand, never stored.
type KPIStats struct {
	ActorID        string `json:"actorId"`
	ActorName      string `json:"actorName,omitempty"`
	NudgedCount    int    `json:"nudgedCount"`
	ConvertedCount int    `json:"convertedCount"`
	PenaltyCount   int    `json:"penaltyCount"`
	NudgeScore     int    `json:"nudgeScore"`
}
