package engine

import (
	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

// EvolutionConfig maps companion levels to evolution stages. Cutoffs are
// configuration, not a formula: a stage is reached at its cutoff level and
// kept until the next one.
type EvolutionConfig struct {
	TeenLevel      int // stage 2
	AdultLevel     int // stage 3
	LegendaryLevel int // stage 4
}

func DefaultEvolutionConfig() EvolutionConfig {
	return EvolutionConfig{TeenLevel: 5, AdultLevel: 12, LegendaryLevel: 25}
}

// StageFor returns the evolution stage (1-4) for a level.
func (c EvolutionConfig) StageFor(level int) int {
	switch {
	case c.LegendaryLevel > 0 && level >= c.LegendaryLevel:
		return 4
	case c.AdultLevel > 0 && level >= c.AdultLevel:
		return 3
	case c.TeenLevel > 0 && level >= c.TeenLevel:
		return 2
	default:
		return constants.EvolutionStageMin
	}
}

// XPForNextLevel is the XP needed to go from level to level+1. The
// requirement scales with level, so levels cannot be read off cumulative XP
// with a flat division.
func XPForNextLevel(level int) int {
	return level * constants.XPLevelFactor
}

// LevelForXP derives level and the XP already earned inside it by walking the
// scaling curve from level 1.
func LevelForXP(xp int) (level, intoLevel int) {
	if xp < 0 {
		xp = 0
	}
	level = 1
	for xp >= XPForNextLevel(level) {
		xp -= XPForNextLevel(level)
		level++
	}
	return level, xp
}

// ProgressResult describes what one XP-affecting event did to a companion.
type ProgressResult struct {
	Level       int  `json:"level"`
	LeveledUp   bool `json:"leveled_up"`
	LevelsMoved int  `json:"levels_moved"`
	Evolved     bool `json:"evolved"`
	Stage       int  `json:"stage"`
	XPIntoLevel int  `json:"xp_into_level"`
	XPForNext   int  `json:"xp_for_next"`
}

// ApplyXP adds delta XP (negative on uncomplete) to the companion and
// re-derives level and stage in one step. A single large completion may cross
// several level boundaries; the walk in LevelForXP handles them all.
// XP, level and stage are clamped at 0, 1 and stage 1 respectively.
func ApplyXP(c *models.Companion, delta int, cfg EvolutionConfig) ProgressResult {
	newXP := c.XP + delta
	if newXP < 0 {
		newXP = 0
	}

	prevLevel := c.Level
	prevStage := c.EvolutionStage
	if prevLevel < 1 {
		prevLevel = 1
	}
	if prevStage < constants.EvolutionStageMin {
		prevStage = constants.EvolutionStageMin
	}

	level, into := LevelForXP(newXP)
	// Stage is checked immediately after the level recomputation so an
	// evolution can only happen on a level change.
	stage := cfg.StageFor(level)

	c.XP = newXP
	c.Level = level
	c.EvolutionStage = stage

	return ProgressResult{
		Level:       level,
		LeveledUp:   level > prevLevel,
		LevelsMoved: level - prevLevel,
		Evolved:     stage > prevStage,
		Stage:       stage,
		XPIntoLevel: into,
		XPForNext:   XPForNextLevel(level),
	}
}
