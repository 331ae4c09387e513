package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/storage"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2026-08-28", false},
		{"today", "2026-08-28", false},
		{"Yesterday", "2026-08-27", false},
		{"2026-01-05", "2026-01-05", false},
		{"05/01/2026", "", true},
		{"tomorrow", "", true},
	}
	for _, tt := range tests {
		got, err := parseDay(tt.in, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDay(%q) expected an error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDay(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDay(%q) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}

func TestResolveActivity(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitkin.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	add := func(id, name string) {
		t.Helper()
		err := store.AddActivity(models.Activity{
			ID:          id,
			Name:        name,
			Pillar:      models.PillarBody,
			SubCategory: models.NewPredefinedCategory(models.CategoryTraining),
			Points:      20,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			t.Fatalf("AddActivity failed: %v", err)
		}
	}
	add("act-1", "Morning run")
	add("act-2", "Stretching")
	add("act-3", "stretching")

	if a, err := resolveActivity(store, "act-1"); err != nil || a.ID != "act-1" {
		t.Errorf("lookup by ID failed: %+v, %v", a, err)
	}
	if a, err := resolveActivity(store, "morning RUN"); err != nil || a.ID != "act-1" {
		t.Errorf("case-insensitive name lookup failed: %+v, %v", a, err)
	}
	if _, err := resolveActivity(store, "stretching"); err == nil {
		t.Error("expected an error for an ambiguous name")
	}
	if _, err := resolveActivity(store, "no such thing"); err == nil {
		t.Error("expected an error for an unknown activity")
	}
}
