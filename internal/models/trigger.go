package models

import "fmt"

type TriggerType string

const (
	TriggerRecoveryAbove     TriggerType = "whoop_recovery_above"
	TriggerRecoveryBelow     TriggerType = "whoop_recovery_below"
	TriggerSleepAbove        TriggerType = "whoop_sleep_above"
	TriggerStrainAbove       TriggerType = "whoop_strain_above"
	TriggerWorkoutType       TriggerType = "whoop_workout_type"
	TriggerActivityCompleted TriggerType = "activity_completed"
)

// AutoTriggerRule auto-completes its owning activity when an external
// condition holds. Exactly the fields required by Type are populated.
type AutoTriggerRule struct {
	ID                string      `json:"id"`
	ActivityID        string      `json:"activity_id"`
	Type              TriggerType `json:"type"`
	Threshold         float64     `json:"threshold,omitempty"`
	WorkoutTypeID     int         `json:"workout_type_id,omitempty"`
	TriggerActivityID string      `json:"trigger_activity_id,omitempty"`
}

// IsThresholdType reports whether the rule compares a numeric reading against
// Threshold.
func (t TriggerType) IsThresholdType() bool {
	switch t {
	case TriggerRecoveryAbove, TriggerRecoveryBelow, TriggerSleepAbove, TriggerStrainAbove:
		return true
	}
	return false
}

func ParseTriggerType(s string) (TriggerType, error) {
	switch TriggerType(s) {
	case TriggerRecoveryAbove, TriggerRecoveryBelow, TriggerSleepAbove,
		TriggerStrainAbove, TriggerWorkoutType, TriggerActivityCompleted:
		return TriggerType(s), nil
	default:
		return "", fmt.Errorf("invalid trigger type: %s", s)
	}
}

// Validate enforces the field/type pairing at creation time. Evaluation
// assumes rules are well-formed.
func (r AutoTriggerRule) Validate() error {
	switch {
	case r.Type.IsThresholdType():
		if r.Threshold <= 0 {
			return fmt.Errorf("trigger type %s requires a positive threshold", r.Type)
		}
		if r.WorkoutTypeID != 0 || r.TriggerActivityID != "" {
			return fmt.Errorf("trigger type %s only accepts a threshold", r.Type)
		}
	case r.Type == TriggerWorkoutType:
		if r.WorkoutTypeID == 0 {
			return fmt.Errorf("trigger type %s requires a workout type id", r.Type)
		}
		if r.Threshold != 0 || r.TriggerActivityID != "" {
			return fmt.Errorf("trigger type %s only accepts a workout type id", r.Type)
		}
	case r.Type == TriggerActivityCompleted:
		if r.TriggerActivityID == "" {
			return fmt.Errorf("trigger type %s requires a trigger activity id", r.Type)
		}
		if r.TriggerActivityID == r.ActivityID {
			return fmt.Errorf("trigger cannot reference its own activity")
		}
		if r.Threshold != 0 || r.WorkoutTypeID != 0 {
			return fmt.Errorf("trigger type %s only accepts a trigger activity id", r.Type)
		}
	default:
		return fmt.Errorf("invalid trigger type: %s", r.Type)
	}
	return nil
}
