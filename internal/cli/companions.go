package cli

import (
	"fmt"

	"github.com/julianstephens/habitkin/internal/engine"
)

var stageNames = map[int]string{
	1: "hatchling",
	2: "teen",
	3: "adult",
	4: "legendary",
}

type CompanionsCmd struct{}

func (c *CompanionsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	companions, err := ctx.Store.GetAllCompanions()
	if err != nil {
		return err
	}

	for _, comp := range companions {
		category, _ := comp.Species.Category()
		_, into := engine.LevelForXP(comp.XP)
		fmt.Printf("%-8s (%s)  level %-3d %-10s %d/%d xp\n",
			comp.Species, category, comp.Level, stageNames[comp.EvolutionStage],
			into, engine.XPForNextLevel(comp.Level))
	}
	return nil
}
