package engine

import (
	"testing"

	"github.com/julianstephens/habitkin/internal/models"
)

func TestXPForNextLevel(t *testing.T) {
	cases := []struct{ level, want int }{
		{1, 100},
		{2, 200},
		{3, 300},
		{10, 1000},
	}
	for _, tc := range cases {
		if got := XPForNextLevel(tc.level); got != tc.want {
			t.Errorf("XPForNextLevel(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}
}

func TestLevelForXP_ScalingCurve(t *testing.T) {
	// Cumulative boundaries: level 2 at 100, level 3 at 300, level 4 at 600,
	// level 5 at 1000.
	cases := []struct{ xp, level, into int }{
		{0, 1, 0},
		{99, 1, 99},
		{100, 2, 0},
		{299, 2, 199},
		{300, 3, 0},
		{599, 3, 299},
		{600, 4, 0},
		{1000, 5, 0},
		{-50, 1, 0},
	}
	for _, tc := range cases {
		level, into := LevelForXP(tc.xp)
		if level != tc.level || into != tc.into {
			t.Errorf("LevelForXP(%d) = (%d, %d), expected (%d, %d)", tc.xp, level, into, tc.level, tc.into)
		}
	}
}

func TestApplyXP_SingleLevelUp(t *testing.T) {
	c := models.NewCompanion(models.SpeciesEmber)

	res := ApplyXP(&c, 150, DefaultEvolutionConfig())
	if !res.LeveledUp || res.Level != 2 {
		t.Errorf("expected level-up to 2, got %+v", res)
	}
	if res.XPIntoLevel != 50 || res.XPForNext != 200 {
		t.Errorf("expected 50/200 into level 2, got %d/%d", res.XPIntoLevel, res.XPForNext)
	}
	if res.Evolved {
		t.Error("level 2 is below the teen cutoff, no evolution expected")
	}
}

func TestApplyXP_CrossesMultipleLevelsInOneEvent(t *testing.T) {
	// Companion at level 3 exactly (cumulative 300) receives 350 XP:
	// 650 total -> level 4 with 50 into it. With a teen cutoff at 4 this
	// single event also evolves the companion once.
	c := models.Companion{Species: models.SpeciesWisp, Level: 3, XP: 300, EvolutionStage: 1}
	cfg := EvolutionConfig{TeenLevel: 4, AdultLevel: 12, LegendaryLevel: 25}

	res := ApplyXP(&c, 350, cfg)
	if res.Level != 4 {
		t.Errorf("expected level 4, got %d", res.Level)
	}
	if !res.LeveledUp || res.LevelsMoved != 1 {
		t.Errorf("expected one boundary crossed, got %+v", res)
	}
	if !res.Evolved || res.Stage != 2 {
		t.Errorf("expected one evolution to stage 2, got evolved=%v stage=%d", res.Evolved, res.Stage)
	}

	// A really large single completion crosses several boundaries.
	c2 := models.NewCompanion(models.SpeciesSage)
	res = ApplyXP(&c2, 650, cfg)
	if res.Level != 4 || res.LevelsMoved != 3 {
		t.Errorf("expected jump from 1 to 4, got level %d moved %d", res.Level, res.LevelsMoved)
	}
}

func TestApplyXP_UncompleteIsSymmetric(t *testing.T) {
	cfg := DefaultEvolutionConfig()
	c := models.NewCompanion(models.SpeciesSprout)

	ApplyXP(&c, 350, cfg)
	gained := c
	res := ApplyXP(&c, -350, cfg)

	if c.XP != 0 || res.Level != 1 || res.Stage != 1 {
		t.Errorf("expected full rollback to level 1, got xp=%d %+v", c.XP, res)
	}
	if res.Evolved {
		t.Error("removal must not fire an evolution event")
	}
	if gained.XP != 350 {
		t.Errorf("expected 350 XP before rollback, got %d", gained.XP)
	}
}

func TestApplyXP_NeverGoesNegative(t *testing.T) {
	cfg := DefaultEvolutionConfig()
	c := models.Companion{Species: models.SpeciesLumen, Level: 1, XP: 30, EvolutionStage: 1}

	res := ApplyXP(&c, -100, cfg)
	if c.XP != 0 {
		t.Errorf("expected XP clamped at 0, got %d", c.XP)
	}
	if res.Level != 1 || res.Stage != 1 {
		t.Errorf("expected floor at level 1 stage 1, got %+v", res)
	}
}

func TestEvolutionConfig_StageFor(t *testing.T) {
	cfg := DefaultEvolutionConfig() // teen 5, adult 12, legendary 25

	cases := []struct{ level, stage int }{
		{1, 1}, {4, 1}, {5, 2}, {11, 2}, {12, 3}, {24, 3}, {25, 4}, {80, 4},
	}
	for _, tc := range cases {
		if got := cfg.StageFor(tc.level); got != tc.stage {
			t.Errorf("StageFor(%d) = %d, expected %d", tc.level, got, tc.stage)
		}
	}
}

func TestApplyXP_EvolutionOnlyOnLevelUp(t *testing.T) {
	cfg := DefaultEvolutionConfig()
	// Level 4, 30 XP short of level 5 (cumulative for 5 is 1000).
	c := models.Companion{Species: models.SpeciesEmber, Level: 4, XP: 970, EvolutionStage: 1}

	res := ApplyXP(&c, 10, cfg)
	if res.LeveledUp || res.Evolved {
		t.Errorf("expected no transition below boundary, got %+v", res)
	}

	res = ApplyXP(&c, 20, cfg)
	if !res.LeveledUp || res.Level != 5 {
		t.Errorf("expected level 5, got %+v", res)
	}
	if !res.Evolved || res.Stage != 2 {
		t.Errorf("expected evolution with the level-up, got %+v", res)
	}
}
