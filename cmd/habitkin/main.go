package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkin/internal/cli"
	"github.com/julianstephens/habitkin/internal/logger"
	"github.com/julianstephens/habitkin/internal/storage"
	"github.com/julianstephens/habitkin/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/habitkin/habitkin.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd   `cmd:"" help:"Initialize habitkin storage."`
	Status   cli.StatusCmd `cmd:"" help:"Show today's pillar scores and streaks." default:"1"`
	Activity struct {
		Add    cli.ActivityAddCmd    `cmd:"" help:"Add a new activity."`
		List   cli.ActivityListCmd   `cmd:"" help:"List activities."`
		Edit   cli.ActivityEditCmd   `cmd:"" help:"Edit an activity."`
		Delete cli.ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	} `cmd:"" help:"Manage activities."`
	Complete   cli.CompleteCmd   `cmd:"" help:"Log a completion."`
	Uncomplete cli.UncompleteCmd `cmd:"" help:"Remove a completion."`
	Streak     cli.StreakCmd     `cmd:"" help:"Show pillar streaks."`
	Weights    struct {
		Show cli.WeightsShowCmd `cmd:"" help:"Show pillar weights." default:"1"`
		Set  cli.WeightsSetCmd  `cmd:"" help:"Set one weight and rebalance the rest."`
	} `cmd:"" help:"Manage sub-category weights."`
	Trigger struct {
		Add    cli.TriggerAddCmd    `cmd:"" help:"Attach an auto-trigger rule to an activity."`
		List   cli.TriggerListCmd   `cmd:"" help:"List trigger rules."`
		Delete cli.TriggerDeleteCmd `cmd:"" help:"Remove an activity's trigger rule."`
	} `cmd:"" help:"Manage auto-trigger rules."`
	Sync       cli.SyncCmd       `cmd:"" help:"Pull biometrics and fire auto-triggers."`
	Companions cli.CompanionsCmd `cmd:"" help:"Show companion levels and evolution stages."`
	Remind     cli.RemindCmd     `cmd:"" help:"Watch streaks and warn before they lapse."`
	Token      struct {
		Set   cli.TokenSetCmd   `cmd:"" help:"Store the WHOOP access token."`
		Clear cli.TokenClearCmd `cmd:"" help:"Remove the stored WHOOP access token."`
	} `cmd:"" help:"Manage the WHOOP access token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitkin"),
		kong.Description("Habit scoring, streak and companion progression tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
