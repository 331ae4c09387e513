package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkin/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habitkin.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_InitSeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.WarningWindowHours != 6 {
		t.Errorf("expected default warning window 6, got %d", settings.WarningWindowHours)
	}

	for _, p := range []models.Pillar{models.PillarBody, models.PillarMind} {
		w, err := store.GetWeights(p)
		if err != nil {
			t.Fatalf("GetWeights(%s) failed: %v", p, err)
		}
		if w.Total() != 100 {
			t.Errorf("%s weights sum to %d, expected 100", p, w.Total())
		}
	}

	companions, err := store.GetAllCompanions()
	if err != nil {
		t.Fatalf("GetAllCompanions failed: %v", err)
	}
	if len(companions) != 5 {
		t.Fatalf("expected 5 seeded companions, got %d", len(companions))
	}
	for _, c := range companions {
		if c.Level != 1 || c.XP != 0 || c.EvolutionStage != 1 {
			t.Errorf("companion %s not at baseline: %+v", c.Species, c)
		}
	}
}

func TestSQLiteStore_ActivityRoundTrip(t *testing.T) {
	store := newTestStore(t)

	a := models.Activity{
		ID:          "act-1",
		Name:        "Evening meditation",
		Pillar:      models.PillarMind,
		SubCategory: models.NewPredefinedCategory(models.CategoryMeditation),
		Points:      20,
		IsHabit:     true,
		Trigger: &models.AutoTriggerRule{
			ID:         "rule-1",
			ActivityID: "act-1",
			Type:       models.TriggerSleepAbove,
			Threshold:  7.5,
		},
		CreatedAt: time.Now().Truncate(time.Second),
	}
	if err := store.AddActivity(a); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	got, err := store.GetActivity("act-1")
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.Name != a.Name || got.Points != a.Points || got.Pillar != a.Pillar {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.SubCategory.Predefined != models.CategoryMeditation {
		t.Errorf("sub-category lost: %+v", got.SubCategory)
	}
	if got.Trigger == nil || got.Trigger.Type != models.TriggerSleepAbove || got.Trigger.Threshold != 7.5 {
		t.Errorf("trigger lost: %+v", got.Trigger)
	}

	if err := store.DeleteActivity("act-1"); err != nil {
		t.Fatalf("DeleteActivity failed: %v", err)
	}
	if _, err := store.GetActivity("act-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStore_CustomCategoryKey(t *testing.T) {
	store := newTestStore(t)

	a := models.Activity{
		ID:          "act-custom",
		Name:        "Cold plunge",
		Pillar:      models.PillarBody,
		SubCategory: models.NewCustomCategory("Cold Exposure"),
		Points:      15,
		CreatedAt:   time.Now(),
	}
	if err := store.AddActivity(a); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	got, err := store.GetActivity("act-custom")
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if !got.SubCategory.IsCustom() || got.SubCategory.CustomID != "cold exposure" {
		t.Errorf("expected normalized custom category, got %+v", got.SubCategory)
	}
}

func TestSQLiteStore_AutoCompletionUniquePerDay(t *testing.T) {
	store := newTestStore(t)

	base := models.ActivityLog{
		ActivityID:   "act-1",
		Day:          "2026-08-28",
		Pillar:       models.PillarBody,
		SubCategory:  models.NewPredefinedCategory(models.CategoryTraining),
		PointsEarned: 30,
		Source:       models.SourceAuto,
	}

	first := base
	first.ID = "log-1"
	first.CompletedAt = time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	if err := store.AddLog(first); err != nil {
		t.Fatalf("first auto log failed: %v", err)
	}

	// Different timestamp, same day: the partial unique index rejects it.
	second := base
	second.ID = "log-2"
	second.CompletedAt = time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)
	if err := store.AddLog(second); !errors.Is(err, ErrDuplicateCompletion) {
		t.Errorf("expected ErrDuplicateCompletion, got %v", err)
	}

	// Manual completions the same day are fine.
	manual := base
	manual.ID = "log-3"
	manual.Source = models.SourceManual
	manual.CompletedAt = time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	if err := store.AddLog(manual); err != nil {
		t.Errorf("manual log rejected: %v", err)
	}
}

func TestSQLiteStore_ManualDoubleTapRejected(t *testing.T) {
	store := newTestStore(t)

	at := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	l := models.ActivityLog{
		ID:           "log-1",
		ActivityID:   "act-1",
		Day:          "2026-08-28",
		CompletedAt:  at,
		Pillar:       models.PillarBody,
		SubCategory:  models.NewPredefinedCategory(models.CategoryTraining),
		PointsEarned: 30,
		Source:       models.SourceManual,
	}
	if err := store.AddLog(l); err != nil {
		t.Fatalf("first log failed: %v", err)
	}

	dup := l
	dup.ID = "log-2"
	dup.CompletedAt = at.Add(300 * time.Millisecond) // truncates to the same second
	if err := store.AddLog(dup); !errors.Is(err, ErrDuplicateCompletion) {
		t.Errorf("expected ErrDuplicateCompletion, got %v", err)
	}
}

func TestSQLiteStore_LogQueries(t *testing.T) {
	store := newTestStore(t)

	days := []string{"2026-08-26", "2026-08-27", "2026-08-28"}
	for i, day := range days {
		l := models.ActivityLog{
			ID:           "log-" + day,
			ActivityID:   "act-1",
			Day:          day,
			CompletedAt:  time.Date(2026, 8, 26+i, 9, 0, 0, 0, time.UTC),
			Pillar:       models.PillarBody,
			SubCategory:  models.NewPredefinedCategory(models.CategoryTraining),
			PointsEarned: 30,
			Source:       models.SourceManual,
		}
		if err := store.AddLog(l); err != nil {
			t.Fatalf("AddLog(%s) failed: %v", day, err)
		}
	}

	byDay, err := store.GetLogsByDay("2026-08-27")
	if err != nil {
		t.Fatalf("GetLogsByDay failed: %v", err)
	}
	if len(byDay) != 1 || byDay[0].Day != "2026-08-27" {
		t.Errorf("expected one log for the 27th, got %+v", byDay)
	}

	byRange, err := store.GetLogsByRange("2026-08-26", "2026-08-27")
	if err != nil {
		t.Fatalf("GetLogsByRange failed: %v", err)
	}
	if len(byRange) != 2 {
		t.Errorf("expected 2 logs in range, got %d", len(byRange))
	}

	if err := store.DeleteLog("log-2026-08-27"); err != nil {
		t.Fatalf("DeleteLog failed: %v", err)
	}
	if err := store.DeleteLog("log-2026-08-27"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSQLiteStore_WeightsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	w := models.PillarWeights{
		Pillar: models.PillarBody,
		Entries: []models.WeightEntry{
			{Category: "training", Weight: 60},
			{Category: "sleep", Weight: 21},
			{Category: "nutrition", Weight: 19},
		},
	}
	if err := store.SaveWeights(w); err != nil {
		t.Fatalf("SaveWeights failed: %v", err)
	}

	got, err := store.GetWeights(models.PillarBody)
	if err != nil {
		t.Fatalf("GetWeights failed: %v", err)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got.Entries))
	}
	// Order must survive: residual correction depends on it.
	for i, e := range w.Entries {
		if got.Entries[i] != e {
			t.Errorf("entry %d mismatch: got %+v, expected %+v", i, got.Entries[i], e)
		}
	}
}

func TestSQLiteStore_CompanionPersistence(t *testing.T) {
	store := newTestStore(t)

	c, err := store.GetCompanion(models.SpeciesWisp)
	if err != nil {
		t.Fatalf("GetCompanion failed: %v", err)
	}
	c.XP = 450
	c.Level = 3
	c.EvolutionStage = 1
	if err := store.SaveCompanion(c); err != nil {
		t.Fatalf("SaveCompanion failed: %v", err)
	}

	got, err := store.GetCompanion(models.SpeciesWisp)
	if err != nil {
		t.Fatalf("GetCompanion failed: %v", err)
	}
	if got.XP != 450 || got.Level != 3 {
		t.Errorf("companion state lost: %+v", got)
	}
}
