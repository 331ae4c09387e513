package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

type ActivityAddCmd struct {
	Name     string `arg:"" optional:"" help:"Activity name."`
	Pillar   string `short:"p" help:"Pillar (body|mind)."`
	Category string `short:"c" help:"Sub-category (training|sleep|nutrition|meditation|learning or a custom name)."`
	Points   int    `help:"Points earned per completion (5-100)."`
	Habit    bool   `help:"Mark as a recurring habit."`
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Anything not supplied as a flag is collected interactively.
	if c.Name == "" || c.Pillar == "" || c.Category == "" || c.Points == 0 {
		if err := c.promptMissing(); err != nil {
			return err
		}
	}

	pillar, err := models.ParsePillar(c.Pillar)
	if err != nil {
		return err
	}
	category, err := models.ParseSubCategory(c.Category)
	if err != nil {
		return err
	}

	activity := models.Activity{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Pillar:      pillar,
		SubCategory: category,
		Points:      c.Points,
		IsHabit:     c.Habit,
		CreatedAt:   time.Now(),
	}
	if err := activity.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddActivity(activity); err != nil {
		return err
	}
	fmt.Printf("Added activity: %s [%s/%s, %d pts] (ID: %s)\n",
		activity.Name, activity.Pillar, formatCategory(activity.SubCategory), activity.Points, activity.ID)
	return nil
}

func (c *ActivityAddCmd) promptMissing() error {
	pointsStr := ""
	if c.Points != 0 {
		pointsStr = strconv.Itoa(c.Points)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Pillar").
				Options(
					huh.NewOption("Body", string(models.PillarBody)),
					huh.NewOption("Mind", string(models.PillarMind)),
				).
				Value(&c.Pillar),
			huh.NewInput().
				Title("Sub-category").
				Description("training, sleep, nutrition, meditation, learning, or a custom name").
				Value(&c.Category),
			huh.NewInput().
				Title("Points").
				Description(fmt.Sprintf("%d-%d per completion", constants.MinActivityPoints, constants.MaxActivityPoints)).
				Value(&pointsStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("points must be a number")
					}
					if n < constants.MinActivityPoints || n > constants.MaxActivityPoints {
						return fmt.Errorf("points must be between %d and %d", constants.MinActivityPoints, constants.MaxActivityPoints)
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Recurring habit?").
				Value(&c.Habit),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	c.Points, _ = strconv.Atoi(pointsStr)
	return nil
}

type ActivityListCmd struct {
	Pillar string `short:"p" help:"Filter by pillar (body|mind)."`
}

func (c *ActivityListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}

	var filter models.Pillar
	if c.Pillar != "" {
		filter, err = models.ParsePillar(c.Pillar)
		if err != nil {
			return err
		}
	}

	count := 0
	for _, a := range activities {
		if filter != "" && a.Pillar != filter {
			continue
		}
		kind := "task"
		if a.IsHabit {
			kind = "habit"
		}
		trigger := ""
		if a.Trigger != nil {
			trigger = fmt.Sprintf("  [auto: %s]", a.Trigger.Type)
		}
		fmt.Printf("%-36s  %-5s  %-20s  %3d pts  %s%s\n",
			a.ID, a.Pillar, formatCategory(a.SubCategory), a.Points, kind, trigger)
		fmt.Printf("    %s\n", a.Name)
		count++
	}
	if count == 0 {
		fmt.Println("No activities. Add one with 'habitkin activity add'.")
	}
	return nil
}

type ActivityEditCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
	Name     string `help:"New name."`
	Points   int    `help:"New points value (5-100)."`
	Habit    *bool  `help:"Mark or unmark as habit."`
}

func (c *ActivityEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}

	if c.Name != "" {
		activity.Name = c.Name
	}
	if c.Points != 0 {
		activity.Points = c.Points
	}
	if c.Habit != nil {
		activity.IsHabit = *c.Habit
	}
	if err := activity.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}
	fmt.Printf("Updated activity: %s (%d pts)\n", activity.Name, activity.Points)
	fmt.Println("Past completions keep the points they were logged with.")
	return nil
}

type ActivityDeleteCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx.Store, c.Activity)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteActivity(activity.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted activity: %s. Its logged completions still count.\n", activity.Name)
	return nil
}
