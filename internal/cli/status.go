package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	pillarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type StatusCmd struct {
	Day string `short:"d" help:"Day to show (YYYY-MM-DD, default today)."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
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

	status, err := ctx.Tracker.DayStatus(at)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("habitkin — %s", status.Day)))
	fmt.Println()

	for _, pillar := range []models.Pillar{models.PillarBody, models.PillarMind} {
		ps := status.Pillars[pillar]

		header := pillarStyle.Render(strings.ToUpper(string(pillar)))
		if ps.Score.Completed {
			header += "  " + completeStyle.Render("✓ complete")
		}
		fmt.Println(header)

		fmt.Printf("  %s %d/%d pts", progressBar(ps.Score.Points, constants.PointsThreshold), ps.Score.Points, constants.PointsThreshold)
		if ps.Score.RawPoints > ps.Score.Points {
			fmt.Print(dimStyle.Render(fmt.Sprintf(" (raw %d)", ps.Score.RawPoints)))
		}
		fmt.Println()

		fmt.Printf("  weighted progress: %.1f%%\n", ps.Weighted)

		streakLine := fmt.Sprintf("  streak: %d days", ps.Streak.CurrentStreakDays)
		if ps.Streak.AtRisk {
			streakLine += "  " + warnStyle.Render(fmt.Sprintf("at risk — %.0fh left", ps.Streak.HoursRemaining))
		}
		fmt.Println(streakLine)
		fmt.Println()
	}

	logs, err := ctx.Store.GetLogsByDay(day)
	if err != nil {
		return err
	}
	if len(logs) > 0 {
		fmt.Println(pillarStyle.Render("COMPLETED"))
		for _, l := range logs {
			tag := ""
			if l.Source == models.SourceAuto {
				tag = dimStyle.Render("  (auto)")
			}
			name := l.ActivityID
			if a, err := ctx.Store.GetActivity(l.ActivityID); err == nil {
				name = a.Name
			}
			fmt.Printf("  %s  %-25s +%d pts%s\n", l.CompletedAt.Format("15:04"), name, l.PointsEarned, tag)
		}
	}
	return nil
}

func progressBar(value, max int) string {
	const width = 20
	if value > max {
		value = max
	}
	filled := value * width / max
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if value >= max {
		return completeStyle.Render(bar)
	}
	return bar
}
