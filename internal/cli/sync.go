package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkin/internal/engine"
	"github.com/julianstephens/habitkin/internal/keyring"
	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/whoop"
)

type SyncCmd struct {
	File string `short:"f" help:"Sync from a JSON reading file instead of the WHOOP API." type:"path"`
}

func (c *SyncCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var (
		reading  models.BiometricReading
		workouts []models.WorkoutEvent
		err      error
	)
	if c.File != "" {
		reading, workouts, err = whoop.LoadReadingFile(c.File)
		if err != nil {
			return err
		}
	} else {
		token, err := keyring.GetAccessToken()
		if err != nil {
			return fmt.Errorf("no WHOOP token, run 'habitkin token set' first: %w", err)
		}
		client := whoop.NewClient(token)
		reading, err = client.LatestReading()
		if err != nil {
			return err
		}
		workouts, err = client.Workouts(reading.Day)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Reading for %s: recovery %.0f, sleep %.1fh, strain %.1f, %d workout(s)\n",
		reading.Day, reading.Recovery, reading.SleepHours, reading.Strain, len(workouts))

	now := time.Now()
	fired := 0

	events := []engine.TriggerEvent{{Day: reading.Day, Reading: &reading}}
	for i := range workouts {
		events = append(events, engine.TriggerEvent{Day: workouts[i].Day, Workout: &workouts[i]})
	}

	for _, ev := range events {
		results, err := ctx.Tracker.EvaluateTriggers(ev, now)
		if err != nil {
			return err
		}
		for _, res := range results {
			name := res.Log.ActivityID
			if a, err := ctx.Store.GetActivity(res.Log.ActivityID); err == nil {
				name = a.Name
			}
			fmt.Printf("Auto-completed %s (+%d pts)\n", name, res.Log.PointsEarned)
			fired++
		}
	}

	if fired == 0 {
		fmt.Println("No trigger rules fired.")
	}
	return nil
}
