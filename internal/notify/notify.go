package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/logger"
	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/tracker"
)

// Sender delivers a reminder. The default implementation writes to stderr;
// a desktop-notification or push sender plugs in the same way.
type Sender interface {
	Send(title, body string) error
}

// WriterSender writes reminders to an io.Writer.
type WriterSender struct {
	Out io.Writer
}

func (s WriterSender) Send(title, body string) error {
	_, err := fmt.Fprintf(s.Out, "%s: %s\n", title, body)
	return err
}

// NewStderrSender returns the default sender.
func NewStderrSender() Sender {
	return WriterSender{Out: os.Stderr}
}

// Reminder periodically checks pillar streaks and sends a warning for each
// pillar whose streak is at risk of lapsing at midnight.
type Reminder struct {
	tracker *tracker.Tracker
	sender  Sender
	cron    *cron.Cron
}

func NewReminder(t *tracker.Tracker, sender Sender) *Reminder {
	return &Reminder{tracker: t, sender: sender, cron: cron.New()}
}

// Run schedules the check on the given cron expression and blocks until the
// context is cancelled.
func (r *Reminder) Run(ctx context.Context, schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.Check(time.Now()); err != nil {
			logger.Error("streak check failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	logger.Info("reminder scheduler started", "schedule", schedule)
	r.cron.Start()
	<-ctx.Done()

	stop := r.cron.Stop()
	<-stop.Done()
	logger.Info("reminder scheduler stopped")
	return nil
}

// Check runs a single streak inspection and sends warnings for at-risk
// pillars. Exposed so 'habitkin remind --once' can run it without the
// scheduler.
func (r *Reminder) Check(now time.Time) error {
	status, err := r.tracker.DayStatus(now)
	if err != nil {
		return err
	}

	for _, pillar := range []models.Pillar{models.PillarBody, models.PillarMind} {
		ps, ok := status.Pillars[pillar]
		if !ok || !ps.Streak.AtRisk {
			continue
		}

		title := fmt.Sprintf("%s streak at risk", pillar)
		body := fmt.Sprintf(
			"Your %d-day %s streak ends in %.0fh. Reach %d points to keep it.",
			ps.Streak.CurrentStreakDays, pillar, ps.Streak.HoursRemaining, constants.PointsThreshold-ps.Score.Points,
		)
		if err := r.sender.Send(title, body); err != nil {
			logger.Error("failed to send reminder", "pillar", pillar, "error", err)
			continue
		}
		logger.Debug("streak warning sent", "pillar", pillar, "streak", ps.Streak.CurrentStreakDays)
	}
	return nil
}
