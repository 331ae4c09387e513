package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
)

type Pillar string

const (
	PillarBody Pillar = "body"
	PillarMind Pillar = "mind"
)

func ParsePillar(s string) (Pillar, error) {
	switch Pillar(strings.ToLower(strings.TrimSpace(s))) {
	case PillarBody:
		return PillarBody, nil
	case PillarMind:
		return PillarMind, nil
	default:
		return "", fmt.Errorf("invalid pillar: %s", s)
	}
}

type PredefinedCategory string

const (
	CategoryTraining   PredefinedCategory = "training"
	CategorySleep      PredefinedCategory = "sleep"
	CategoryNutrition  PredefinedCategory = "nutrition"
	CategoryMeditation PredefinedCategory = "meditation"
	CategoryLearning   PredefinedCategory = "learning"
)

// PillarOf maps the predefined categories onto their pillars.
var PillarOf = map[PredefinedCategory]Pillar{
	CategoryTraining:   PillarBody,
	CategorySleep:      PillarBody,
	CategoryNutrition:  PillarBody,
	CategoryMeditation: PillarMind,
	CategoryLearning:   PillarMind,
}

// SubCategory is either one of the predefined categories or a user-defined
// custom one. Exactly one of the two fields is set, so matching never falls
// back to comparing free-form strings with different casing or whitespace.
type SubCategory struct {
	Predefined PredefinedCategory `json:"predefined,omitempty"`
	CustomID   string             `json:"custom_id,omitempty"`
}

func NewPredefinedCategory(c PredefinedCategory) SubCategory {
	return SubCategory{Predefined: c}
}

func NewCustomCategory(id string) SubCategory {
	return SubCategory{CustomID: strings.ToLower(strings.TrimSpace(id))}
}

// ParseSubCategory normalizes user input: a known predefined name resolves to
// the predefined variant, anything else becomes a custom category.
func ParseSubCategory(s string) (SubCategory, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return SubCategory{}, fmt.Errorf("sub-category cannot be empty")
	}
	c := PredefinedCategory(norm)
	if _, ok := PillarOf[c]; ok {
		return SubCategory{Predefined: c}, nil
	}
	return SubCategory{CustomID: norm}, nil
}

func (c SubCategory) IsCustom() bool {
	return c.CustomID != ""
}

// Key returns a stable string form used as a storage and weight-map key.
func (c SubCategory) Key() string {
	if c.IsCustom() {
		return "custom:" + c.CustomID
	}
	return string(c.Predefined)
}

// SubCategoryFromKey is the inverse of Key.
func SubCategoryFromKey(key string) SubCategory {
	if id, ok := strings.CutPrefix(key, "custom:"); ok {
		return SubCategory{CustomID: id}
	}
	return SubCategory{Predefined: PredefinedCategory(key)}
}

func (c SubCategory) String() string {
	if c.IsCustom() {
		return c.CustomID
	}
	return string(c.Predefined)
}

// Activity is a user-defined habit or one-off task.
type Activity struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Pillar      Pillar           `json:"pillar"`
	SubCategory SubCategory      `json:"sub_category"`
	Points      int              `json:"points"`
	IsHabit     bool             `json:"is_habit"`
	Trigger     *AutoTriggerRule `json:"trigger,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	DeletedAt   *string          `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	if a.Pillar != PillarBody && a.Pillar != PillarMind {
		return fmt.Errorf("invalid pillar: %s", a.Pillar)
	}
	if a.Points < constants.MinActivityPoints || a.Points > constants.MaxActivityPoints {
		return fmt.Errorf("points must be between %d and %d", constants.MinActivityPoints, constants.MaxActivityPoints)
	}
	if !a.SubCategory.IsCustom() {
		p, ok := PillarOf[a.SubCategory.Predefined]
		if !ok {
			return fmt.Errorf("unknown sub-category: %s", a.SubCategory.Predefined)
		}
		if p != a.Pillar {
			return fmt.Errorf("sub-category %s belongs to pillar %s", a.SubCategory.Predefined, p)
		}
	}
	if a.Trigger != nil {
		if err := a.Trigger.Validate(); err != nil {
			return err
		}
		if a.Trigger.Type == TriggerActivityCompleted && a.Trigger.TriggerActivityID == a.ID {
			return fmt.Errorf("trigger cannot reference its own activity")
		}
	}
	return nil
}

type CompletionSource string

const (
	SourceManual CompletionSource = "manual"
	SourceAuto   CompletionSource = "auto"
)

// TrainingDetails are optional structured metrics attached to a completion.
type TrainingDetails struct {
	DurationMin  int     `json:"duration_min,omitempty"`
	DistanceKm   float64 `json:"distance_km,omitempty"`
	AvgHeartRate int     `json:"avg_heart_rate,omitempty"`
}

// ActivityLog records one completion. Pillar, sub-category and points are
// snapshotted at completion time so later activity edits or deletions never
// change history.
type ActivityLog struct {
	ID           string           `json:"id"`
	ActivityID   string           `json:"activity_id"`
	Day          string           `json:"day"` // YYYY-MM-DD, local time
	CompletedAt  time.Time        `json:"completed_at"`
	Pillar       Pillar           `json:"pillar"`
	SubCategory  SubCategory      `json:"sub_category"`
	PointsEarned int              `json:"points_earned"`
	Source       CompletionSource `json:"source"`
	Details      *TrainingDetails `json:"details,omitempty"`
}
