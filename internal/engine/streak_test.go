package engine

import (
	"testing"
	"time"

	"github.com/julianstephens/habitkin/internal/models"
)

func dayString(t time.Time) string {
	return t.Format("2006-01-02")
}

func TestComputeStreak_ConsecutiveDays(t *testing.T) {
	// 5 qualifying days ending yesterday; today still open.
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	qualified := map[string]bool{}
	for i := 1; i <= 5; i++ {
		qualified[dayString(now.AddDate(0, 0, -i))] = true
	}

	state := ComputeStreak(models.PillarBody, qualified, now, 6)
	if state.CurrentStreakDays != 5 {
		t.Errorf("expected streak 5, got %d", state.CurrentStreakDays)
	}
	if state.LastQualifyingDate != dayString(now.AddDate(0, 0, -1)) {
		t.Errorf("expected last qualifying yesterday, got %s", state.LastQualifyingDate)
	}
}

func TestComputeStreak_MissedDayResets(t *testing.T) {
	// Days 1-5 qualify, day 6 missed: evaluated on day 7 the streak is 0.
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	qualified := map[string]bool{}
	for i := 0; i < 5; i++ {
		qualified[dayString(base.AddDate(0, 0, i))] = true
	}

	onDay5 := ComputeStreak(models.PillarBody, qualified, base.AddDate(0, 0, 4).Add(10*time.Hour), 6)
	if onDay5.CurrentStreakDays != 5 {
		t.Errorf("day 5: expected streak 5, got %d", onDay5.CurrentStreakDays)
	}

	onDay7 := ComputeStreak(models.PillarBody, qualified, base.AddDate(0, 0, 6), 6)
	if onDay7.CurrentStreakDays != 0 {
		t.Errorf("day 7: expected streak 0 after missed day 6, got %d", onDay7.CurrentStreakDays)
	}
}

func TestComputeStreak_TodayQualifiedCountsToday(t *testing.T) {
	now := time.Date(2026, 8, 28, 21, 0, 0, 0, time.UTC)
	qualified := map[string]bool{
		dayString(now):                  true,
		dayString(now.AddDate(0, 0, -1)): true,
	}

	state := ComputeStreak(models.PillarMind, qualified, now, 6)
	if state.CurrentStreakDays != 2 {
		t.Errorf("expected streak 2, got %d", state.CurrentStreakDays)
	}
	if state.LastQualifyingDate != dayString(now) {
		t.Errorf("expected last qualifying today, got %s", state.LastQualifyingDate)
	}
	if state.AtRisk {
		t.Error("a day already qualified is never at risk")
	}
}

func TestComputeStreak_AtRiskWindow(t *testing.T) {
	qualifiedYesterday := func(now time.Time) map[string]bool {
		return map[string]bool{dayString(now.AddDate(0, 0, -1)): true}
	}

	// 21:00 -> 3h remaining, inside the 6h window.
	evening := time.Date(2026, 8, 28, 21, 0, 0, 0, time.UTC)
	state := ComputeStreak(models.PillarBody, qualifiedYesterday(evening), evening, 6)
	if !state.AtRisk {
		t.Error("expected at risk with 3h remaining and streak alive")
	}
	if state.HoursRemaining < 2.9 || state.HoursRemaining > 3.1 {
		t.Errorf("expected ~3 hours remaining, got %.2f", state.HoursRemaining)
	}

	// 10:00 -> 14h remaining, outside the window.
	morning := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	state = ComputeStreak(models.PillarBody, qualifiedYesterday(morning), morning, 6)
	if state.AtRisk {
		t.Error("expected not at risk with 14h remaining")
	}

	// No streak to lose -> never at risk.
	state = ComputeStreak(models.PillarBody, map[string]bool{}, evening, 6)
	if state.AtRisk {
		t.Error("expected not at risk with zero streak")
	}
}

func TestComputeStreak_HoursRemainingNeverNegative(t *testing.T) {
	almostMidnight := time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)
	state := ComputeStreak(models.PillarBody, map[string]bool{}, almostMidnight, 6)
	if state.HoursRemaining < 0 {
		t.Errorf("hours remaining negative: %f", state.HoursRemaining)
	}
}

func TestComputeStreak_RespectsLocation(t *testing.T) {
	// Same instant, different zones: day boundaries follow the clock's zone.
	loc := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC) // Aug 29 06:00 in UTC+10

	local := instant.In(loc)
	qualified := map[string]bool{"2026-08-28": true}

	state := ComputeStreak(models.PillarBody, qualified, local, 6)
	// In UTC+10 it is already the 29th, so the 28th counts as yesterday.
	if state.CurrentStreakDays != 1 {
		t.Errorf("expected streak 1 across zone shift, got %d", state.CurrentStreakDays)
	}
	if state.HoursRemaining < 17.9 || state.HoursRemaining > 18.1 {
		t.Errorf("expected ~18h to local midnight, got %.2f", state.HoursRemaining)
	}
}
