package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkin/internal/models"
)

type TriggerAddCmd struct {
	Activity string `arg:"" help:"Activity ID or name the rule auto-completes."`
	Type     string `arg:"" help:"Trigger type (whoop_recovery_above|whoop_recovery_below|whoop_sleep_above|whoop_strain_above|whoop_workout_type|activity_completed)."`

	Threshold float64 `short:"t" help:"Threshold for recovery/sleep/strain rules."`
	Workout   int     `short:"w" help:"WHOOP sport id for whoop_workout_type."`
	After     string  `short:"a" help:"Activity ID or name for activity_completed."`
}

func (c *TriggerAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}

	triggerType, err := models.ParseTriggerType(c.Type)
	if err != nil {
		return err
	}

	rule := models.AutoTriggerRule{
		ID:            uuid.New().String(),
		ActivityID:    activity.ID,
		Type:          triggerType,
		Threshold:     c.Threshold,
		WorkoutTypeID: c.Workout,
	}
	if c.After != "" {
		after, err := resolveActivity(ctx.Store, c.After)
		if err != nil {
			return err
		}
		rule.TriggerActivityID = after.ID
	}
	if err := rule.Validate(); err != nil {
		return err
	}

	activity.Trigger = &rule
	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Attached %s trigger to %s\n", rule.Type, activity.Name)
	return nil
}

type TriggerListCmd struct{}

func (c *TriggerListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}

	count := 0
	for _, a := range activities {
		if a.Trigger == nil {
			continue
		}
		fmt.Printf("%-30s %s%s\n", a.Name, a.Trigger.Type, formatTriggerParam(*a.Trigger))
		count++
	}
	if count == 0 {
		fmt.Println("No auto-trigger rules configured.")
	}
	return nil
}

type TriggerDeleteCmd struct {
	Activity string `arg:"" help:"Activity ID or name whose trigger to remove."`
}

func (c *TriggerDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}
	if activity.Trigger == nil {
		fmt.Printf("%s has no trigger.\n", activity.Name)
		return nil
	}

	activity.Trigger = nil
	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}
	fmt.Printf("Removed trigger from %s\n", activity.Name)
	return nil
}

func formatTriggerParam(r models.AutoTriggerRule) string {
	switch {
	case r.Type.IsThresholdType():
		return fmt.Sprintf(" (threshold %.1f)", r.Threshold)
	case r.Type == models.TriggerWorkoutType:
		return fmt.Sprintf(" (sport %d)", r.WorkoutTypeID)
	case r.Type == models.TriggerActivityCompleted:
		return fmt.Sprintf(" (after %s)", r.TriggerActivityID)
	}
	return ""
}
