package engine

import (
	"testing"

	"github.com/julianstephens/habitkin/internal/models"
)

func bodyWeights(training, sleep, nutrition int) models.PillarWeights {
	return models.PillarWeights{
		Pillar: models.PillarBody,
		Entries: []models.WeightEntry{
			{Category: "training", Weight: training},
			{Category: "sleep", Weight: sleep},
			{Category: "nutrition", Weight: nutrition},
		},
	}
}

func TestSetWeight_ProportionalRedistribution(t *testing.T) {
	w := bodyWeights(35, 35, 30)

	got, err := SetWeight(w, "training", 60)
	if err != nil {
		t.Fatalf("SetWeight failed: %v", err)
	}

	if v, _ := got.Weight("training"); v != 60 {
		t.Errorf("expected training=60, got %d", v)
	}
	// 40 remaining split 35:30 -> 21.5 and 18.5, rounded then corrected.
	sleep, _ := got.Weight("sleep")
	nutrition, _ := got.Weight("nutrition")
	if sleep < 20 || sleep > 22 {
		t.Errorf("expected sleep near 21, got %d", sleep)
	}
	if nutrition < 18 || nutrition > 20 {
		t.Errorf("expected nutrition near 19, got %d", nutrition)
	}
	if got.Total() != 100 {
		t.Errorf("expected total 100, got %d", got.Total())
	}
}

func TestSetWeight_AlwaysSumsTo100(t *testing.T) {
	cases := []struct {
		name     string
		start    models.PillarWeights
		category string
		value    int
	}{
		{"even split up", bodyWeights(34, 33, 33), "training", 80},
		{"to zero", bodyWeights(35, 35, 30), "sleep", 0},
		{"to full", bodyWeights(35, 35, 30), "nutrition", 100},
		{"small nudge", bodyWeights(50, 25, 25), "training", 49},
		{"skewed", bodyWeights(98, 1, 1), "training", 10},
		{"one sided", bodyWeights(0, 100, 0), "sleep", 40},
	}

	for _, tc := range cases {
		got, err := SetWeight(tc.start, tc.category, tc.value)
		if err != nil {
			t.Errorf("%s: SetWeight failed: %v", tc.name, err)
			continue
		}
		if got.Total() != 100 {
			t.Errorf("%s: total %d, expected 100", tc.name, got.Total())
		}
		if v, _ := got.Weight(tc.category); v != tc.value {
			t.Errorf("%s: edited weight %d, expected %d", tc.name, v, tc.value)
		}
		for _, e := range got.Entries {
			if e.Weight < 0 || e.Weight > 100 {
				t.Errorf("%s: weight %s out of range: %d", tc.name, e.Category, e.Weight)
			}
		}
	}
}

func TestSetWeight_DeterministicResidual(t *testing.T) {
	w := bodyWeights(34, 33, 33)

	first, err := SetWeight(w, "training", 80)
	if err != nil {
		t.Fatalf("SetWeight failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := SetWeight(w, "training", 80)
		if err != nil {
			t.Fatalf("SetWeight failed on repeat: %v", err)
		}
		for j := range first.Entries {
			if again.Entries[j] != first.Entries[j] {
				t.Fatalf("run %d: entry %d differs: %+v vs %+v", i, j, again.Entries[j], first.Entries[j])
			}
		}
	}
}

func TestSetWeight_IncreaseWithAllZeroOthersIsNoop(t *testing.T) {
	w := models.PillarWeights{
		Pillar: models.PillarMind,
		Entries: []models.WeightEntry{
			{Category: "meditation", Weight: 100},
			{Category: "learning", Weight: 0},
		},
	}

	// meditation already holds everything; there is no room to grow into.
	got, err := SetWeight(w, "meditation", 100)
	if err != nil {
		t.Fatalf("SetWeight failed: %v", err)
	}
	if v, _ := got.Weight("meditation"); v != 100 {
		t.Errorf("expected meditation unchanged at 100, got %d", v)
	}
}

func TestSetWeight_DecreaseWithAllZeroOthersSplitsEqually(t *testing.T) {
	w := bodyWeights(100, 0, 0)

	got, err := SetWeight(w, "training", 40)
	if err != nil {
		t.Fatalf("SetWeight failed: %v", err)
	}
	if got.Total() != 100 {
		t.Errorf("expected total 100, got %d", got.Total())
	}
	sleep, _ := got.Weight("sleep")
	nutrition, _ := got.Weight("nutrition")
	if sleep == 0 || nutrition == 0 {
		t.Errorf("expected freed weight split across others, got sleep=%d nutrition=%d", sleep, nutrition)
	}
}

func TestSetWeight_RejectsBadInput(t *testing.T) {
	w := bodyWeights(35, 35, 30)

	if _, err := SetWeight(w, "training", 101); err == nil {
		t.Error("expected error for value above 100")
	}
	if _, err := SetWeight(w, "training", -1); err == nil {
		t.Error("expected error for negative value")
	}
	if _, err := SetWeight(w, "stretching", 50); err == nil {
		t.Error("expected error for unknown category")
	}
}
