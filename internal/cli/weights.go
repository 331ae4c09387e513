package cli

import (
	"fmt"

	"github.com/julianstephens/habitkin/internal/engine"
	"github.com/julianstephens/habitkin/internal/models"
)

type WeightsShowCmd struct {
	Pillar string `arg:"" optional:"" help:"Pillar to show (body|mind, default both)."`
}

func (c *WeightsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
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
		w, err := ctx.Store.GetWeights(pillar)
		if err != nil {
			return err
		}
		fmt.Printf("%s:\n", pillar)
		for _, e := range w.Entries {
			fmt.Printf("  %-20s %3d\n", models.SubCategoryFromKey(e.Category), e.Weight)
		}
	}
	return nil
}

type WeightsSetCmd struct {
	Pillar   string `arg:"" help:"Pillar (body|mind)."`
	Category string `arg:"" help:"Sub-category to adjust."`
	Weight   int    `arg:"" help:"New weight (0-100)."`
}

func (c *WeightsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pillar, err := models.ParsePillar(c.Pillar)
	if err != nil {
		return err
	}
	category, err := models.ParseSubCategory(c.Category)
	if err != nil {
		return err
	}

	weights, err := ctx.Store.GetWeights(pillar)
	if err != nil {
		return err
	}

	updated, err := engine.SetWeight(weights, category.Key(), c.Weight)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveWeights(updated); err != nil {
		return err
	}

	fmt.Printf("%s weights rebalanced:\n", pillar)
	for _, e := range updated.Entries {
		fmt.Printf("  %-20s %3d\n", models.SubCategoryFromKey(e.Category), e.Weight)
	}
	return nil
}
