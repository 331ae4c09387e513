package engine

import "github.com/julianstephens/habitkin/internal/models"

// CompletionIndex reports whether an activity already has any completion
// recorded for a calendar day. It is the idempotency key for auto-triggers:
// re-delivered readings and re-evaluated rules observe the existing
// completion and back off.
type CompletionIndex interface {
	HasCompletion(activityID, day string) bool
}

// TriggerEvent is one incoming event: a biometric reading, a logged workout,
// or an activity completion. Exactly one of the payload fields is set.
type TriggerEvent struct {
	Day                 string
	Reading             *models.BiometricReading
	Workout             *models.WorkoutEvent
	CompletedActivityID string
}

// TriggerResult names an activity whose rule matched and which has no
// completion yet for the event's day.
type TriggerResult struct {
	Rule       models.AutoTriggerRule
	ActivityID string
}

// EvaluateTriggers matches an event against every rule independently and
// returns at most one result per owning activity. Rules whose owning or
// referenced activity is gone are skipped silently; already-satisfied rules
// are a no-op. The caller persists the synthesized completions.
func EvaluateTriggers(rules []models.AutoTriggerRule, activities map[string]models.Activity, ev TriggerEvent, idx CompletionIndex) []TriggerResult {
	var results []TriggerResult
	for _, rule := range rules {
		if _, ok := activities[rule.ActivityID]; !ok {
			continue // orphaned rule
		}
		if !ruleMatches(rule, activities, ev) {
			continue
		}
		if idx.HasCompletion(rule.ActivityID, ev.Day) {
			continue
		}
		results = append(results, TriggerResult{Rule: rule, ActivityID: rule.ActivityID})
	}
	return results
}

func ruleMatches(rule models.AutoTriggerRule, activities map[string]models.Activity, ev TriggerEvent) bool {
	switch rule.Type {
	case models.TriggerRecoveryAbove:
		return ev.Reading != nil && ev.Reading.Recovery >= rule.Threshold
	case models.TriggerRecoveryBelow:
		return ev.Reading != nil && ev.Reading.Recovery < rule.Threshold
	case models.TriggerSleepAbove:
		return ev.Reading != nil && ev.Reading.SleepHours >= rule.Threshold
	case models.TriggerStrainAbove:
		return ev.Reading != nil && ev.Reading.Strain >= rule.Threshold
	case models.TriggerWorkoutType:
		return ev.Workout != nil && ev.Workout.TypeID == rule.WorkoutTypeID
	case models.TriggerActivityCompleted:
		if ev.CompletedActivityID == "" || ev.CompletedActivityID != rule.TriggerActivityID {
			return false
		}
		// Referenced activity deleted -> dead rule, skip silently.
		_, ok := activities[rule.TriggerActivityID]
		return ok
	}
	return false
}
