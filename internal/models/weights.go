package models

import "fmt"

// WeightEntry assigns an integer weight to a sub-category key. Entries keep a
// stable order so rounding corrections are deterministic.
type WeightEntry struct {
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// PillarWeights holds the sub-category weight distribution for one pillar.
// Invariant: weights always sum to exactly 100.
type PillarWeights struct {
	Pillar  Pillar        `json:"pillar"`
	Entries []WeightEntry `json:"entries"`
}

func (w PillarWeights) Total() int {
	total := 0
	for _, e := range w.Entries {
		total += e.Weight
	}
	return total
}

func (w PillarWeights) Weight(category string) (int, bool) {
	for _, e := range w.Entries {
		if e.Category == category {
			return e.Weight, true
		}
	}
	return 0, false
}

func (w PillarWeights) Validate() error {
	for _, e := range w.Entries {
		if e.Weight < 0 || e.Weight > 100 {
			return fmt.Errorf("weight for %s out of range: %d", e.Category, e.Weight)
		}
	}
	if total := w.Total(); total != 100 {
		return fmt.Errorf("weights for pillar %s sum to %d, expected 100", w.Pillar, total)
	}
	return nil
}

// DefaultWeights returns the initial distribution for a pillar.
func DefaultWeights(p Pillar) PillarWeights {
	switch p {
	case PillarBody:
		return PillarWeights{
			Pillar: PillarBody,
			Entries: []WeightEntry{
				{Category: string(CategoryTraining), Weight: 35},
				{Category: string(CategorySleep), Weight: 35},
				{Category: string(CategoryNutrition), Weight: 30},
			},
		}
	case PillarMind:
		return PillarWeights{
			Pillar: PillarMind,
			Entries: []WeightEntry{
				{Category: string(CategoryMeditation), Weight: 50},
				{Category: string(CategoryLearning), Weight: 50},
			},
		}
	}
	return PillarWeights{Pillar: p}
}
