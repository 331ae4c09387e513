package storage

import (
	"errors"

	"github.com/julianstephens/habitkin/internal/models"
)

// ErrNotFound is returned when a record does not exist (or was soft-deleted).
var ErrNotFound = errors.New("record not found")

// ErrDuplicateCompletion is returned when the single-writer completion guard
// rejects a second insert for the same key: an identical second-resolution
// timestamp for manual completions, or any same-day repeat for auto ones.
var ErrDuplicateCompletion = errors.New("completion already recorded")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetAllActivities() ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error

	// Completion logs
	AddLog(models.ActivityLog) error
	GetLog(id string) (models.ActivityLog, error)
	GetLogsByDay(day string) ([]models.ActivityLog, error)
	GetLogsByRange(fromDay, toDay string) ([]models.ActivityLog, error)
	GetLogsForActivity(activityID, day string) ([]models.ActivityLog, error)
	DeleteLog(id string) error

	// Pillar weights
	GetWeights(p models.Pillar) (models.PillarWeights, error)
	SaveWeights(models.PillarWeights) error

	// Companions
	GetCompanion(s models.Species) (models.Companion, error)
	GetAllCompanions() ([]models.Companion, error)
	SaveCompanion(models.Companion) error

	// Utils
	GetConfigPath() string
}
