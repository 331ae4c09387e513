package engine

import (
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

// ComputeStreak derives streak state for one pillar from the set of qualifying
// days (days where the pillar hit the points threshold). The evaluation clock
// is passed explicitly so day boundaries and timezones are deterministic in
// tests; "now" is never read ambiently.
//
// The streak counts consecutive qualifying days walking backward from today,
// or from yesterday while today is still in progress. Once a missed day has
// fully elapsed the streak reads zero.
func ComputeStreak(pillar models.Pillar, qualified map[string]bool, now time.Time, warningWindowHours int) models.StreakState {
	if warningWindowHours <= 0 {
		warningWindowHours = constants.DefaultWarningWindowHours
	}

	today := now.Format(constants.DayFormat)
	state := models.StreakState{
		Pillar:         pillar,
		HoursRemaining: hoursUntilMidnight(now),
	}

	start := now
	if !qualified[today] {
		start = now.AddDate(0, 0, -1)
	}

	for d := start; qualified[d.Format(constants.DayFormat)]; d = d.AddDate(0, 0, -1) {
		if state.CurrentStreakDays == 0 {
			state.LastQualifyingDate = d.Format(constants.DayFormat)
		}
		state.CurrentStreakDays++
	}

	state.AtRisk = !qualified[today] &&
		state.CurrentStreakDays > 0 &&
		state.HoursRemaining <= float64(warningWindowHours)

	return state
}

// hoursUntilMidnight returns wall-clock hours between now and the next local
// midnight. Never negative; rounding is left to presentation.
func hoursUntilMidnight(now time.Time) float64 {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	h := midnight.Sub(now).Hours()
	if h < 0 {
		return 0
	}
	return h
}
