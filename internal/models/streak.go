package models

// StreakState is fully derived from completion history; it is never mutated
// imperatively by client actions.
type StreakState struct {
	Pillar             Pillar  `json:"pillar"`
	CurrentStreakDays  int     `json:"current_streak_days"`
	LastQualifyingDate string  `json:"last_qualifying_date,omitempty"` // YYYY-MM-DD
	AtRisk             bool    `json:"at_risk"`
	HoursRemaining     float64 `json:"hours_remaining"`
}
