package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/notify"
)

type RemindCmd struct {
	Once     bool   `help:"Run a single streak check and exit."`
	Schedule string `short:"s" help:"Cron schedule for periodic checks (default from settings)."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reminder := notify.NewReminder(ctx.Tracker, notify.NewStderrSender())

	if c.Once {
		return reminder.Check(time.Now())
	}

	schedule := c.Schedule
	if schedule == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		schedule = settings.ReminderSchedule
	}
	if schedule == "" {
		schedule = constants.DefaultReminderSchedule
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching streaks on schedule %q. Ctrl-C to stop.\n", schedule)
	return reminder.Run(runCtx, schedule)
}
