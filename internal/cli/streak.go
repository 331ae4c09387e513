package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkin/internal/models"
)

type StreakCmd struct {
	Pillar string `arg:"" optional:"" help:"Pillar to show (body|mind, default both)."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	status, err := ctx.Tracker.DayStatus(time.Now())
	if err != nil {
		return err
	}

	pillars := []models.Pillar{models.PillarBody, models.PillarMind}
	if c.Pillar != "" {
		p, err := models.ParsePillar(c.Pillar)
		if err != nil {
			return err
		}
		pillars = []models.Pillar{p}
	}

	for _, pillar := range pillars {
		s := status.Pillars[pillar].Streak
		fmt.Printf("%s: %d days", pillar, s.CurrentStreakDays)
		if s.LastQualifyingDate != "" {
			fmt.Printf(" (last qualified %s)", s.LastQualifyingDate)
		}
		if s.AtRisk {
			fmt.Print(warnStyle.Render(fmt.Sprintf("  at risk — %.0fh to keep it", s.HoursRemaining)))
		}
		fmt.Println()
	}
	return nil
}
