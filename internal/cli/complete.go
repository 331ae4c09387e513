package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/engine"
	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/tracker"
)

type CompleteCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
	Day      string `short:"d" help:"Day to log the completion on (YYYY-MM-DD, default today)."`

	Duration  int     `help:"Training duration in minutes."`
	Distance  float64 `help:"Training distance in km."`
	HeartRate int     `name:"hr" help:"Average heart rate."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}

	now := time.Now()
	day, err := parseDay(c.Day, now)
	if err != nil {
		return err
	}
	at := now
	if day != now.Format(constants.DayFormat) {
		d, _ := time.ParseInLocation(constants.DayFormat, day, now.Location())
		at = d.Add(12 * time.Hour)
	}

	var details *models.TrainingDetails
	if c.Duration > 0 || c.Distance > 0 || c.HeartRate > 0 {
		details = &models.TrainingDetails{
			DurationMin:  c.Duration,
			DistanceKm:   c.Distance,
			AvgHeartRate: c.HeartRate,
		}
	}

	res, err := ctx.Tracker.CompleteActivity(activity.ID, at, models.SourceManual, details)
	if err != nil {
		return err
	}
	if res.NoOp {
		fmt.Printf("%s is already logged for that moment, nothing recorded.\n", activity.Name)
		return nil
	}

	fmt.Printf("Completed %s (+%d pts)\n", activity.Name, res.Log.PointsEarned)
	printProgress(res.Progress)
	printPillar(res.Status, activity.Pillar)
	return nil
}

type UncompleteCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
	Day      string `short:"d" help:"Day the completion was logged on (default today)."`
}

func (c *UncompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}

	now := time.Now()
	day, err := parseDay(c.Day, now)
	if err != nil {
		return err
	}

	logs, err := ctx.Store.GetLogsForActivity(activity.ID, day)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Printf("No completion of %s on %s, nothing removed.\n", activity.Name, day)
		return nil
	}

	// Remove the most recent one.
	sort.Slice(logs, func(i, j int) bool { return logs[i].CompletedAt.Before(logs[j].CompletedAt) })
	entry := logs[len(logs)-1]

	res, err := ctx.Tracker.UncompleteActivity(entry.ID, now)
	if err != nil {
		return err
	}
	if res.NoOp {
		fmt.Println("Completion was already gone, nothing removed.")
		return nil
	}

	fmt.Printf("Removed completion of %s on %s (-%d pts)\n", activity.Name, day, entry.PointsEarned)
	printPillar(res.Status, activity.Pillar)
	return nil
}

// printProgress reports companion XP movement from a completion, if any.
func printProgress(p *engine.ProgressResult) {
	if p == nil {
		return
	}
	if p.LeveledUp {
		fmt.Printf("Your companion reached level %d!\n", p.Level)
	}
	if p.Evolved {
		fmt.Printf("Your companion evolved to stage %d!\n", p.Stage)
	}
	fmt.Printf("XP: %d/%d into level %d\n", p.XPIntoLevel, p.XPForNext, p.Level)
}

// printPillar gives a one-line pillar summary after a mutation.
func printPillar(status tracker.DayStatus, pillar models.Pillar) {
	ps, ok := status.Pillars[pillar]
	if !ok {
		return
	}
	state := "open"
	if ps.Score.Completed {
		state = "complete"
	}
	fmt.Printf("%s pillar: %d/%d pts (%s), streak %d days\n",
		pillar, ps.Score.Points, constants.PointsThreshold, state, ps.Streak.CurrentStreakDays)
}
