package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

// jsonFile is the on-disk shape of the JSON store.
type jsonFile struct {
	Version    int                               `json:"version"`
	Settings   models.Settings                   `json:"settings"`
	Activities map[string]models.Activity        `json:"activities"`
	Logs       map[string]models.ActivityLog     `json:"logs"`
	Weights    map[string]models.PillarWeights   `json:"weights"`
	Companions map[string]models.Companion       `json:"companions"`
}

// JSONStore keeps everything in a single pretty-printed file. Handy for
// debugging and small installs; SQLite is the default.
type JSONStore struct {
	path string
	data *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &jsonFile{
		Version: 1,
		Settings: models.Settings{
			WarningWindowHours: constants.DefaultWarningWindowHours,
			ReminderSchedule:   constants.DefaultReminderSchedule,
		},
		Activities: make(map[string]models.Activity),
		Logs:       make(map[string]models.ActivityLog),
		Weights:    make(map[string]models.PillarWeights),
		Companions: make(map[string]models.Companion),
	}
	for _, p := range []models.Pillar{models.PillarBody, models.PillarMind} {
		s.data.Weights[string(p)] = models.DefaultWeights(p)
	}
	for _, species := range models.AllSpecies() {
		s.data.Companions[string(species)] = models.NewCompanion(species)
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.data != nil {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkin init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = &jsonFile{}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.data.Activities == nil {
		s.data.Activities = make(map[string]models.Activity)
	}
	if s.data.Logs == nil {
		s.data.Logs = make(map[string]models.ActivityLog)
	}
	if s.data.Weights == nil {
		s.data.Weights = make(map[string]models.PillarWeights)
	}
	if s.data.Companions == nil {
		s.data.Companions = make(map[string]models.Companion)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Settings

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.data.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Settings = settings
	return s.save()
}

// Activities

func (s *JSONStore) AddActivity(a models.Activity) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Activities[a.ID] = a
	return s.save()
}

func (s *JSONStore) UpdateActivity(a models.Activity) error {
	return s.AddActivity(a)
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if err := s.loaded(); err != nil {
		return models.Activity{}, err
	}
	a, ok := s.data.Activities[id]
	if !ok || a.DeletedAt != nil {
		return models.Activity{}, ErrNotFound
	}
	return a, nil
}

func (s *JSONStore) GetAllActivities() ([]models.Activity, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var activities []models.Activity
	for _, a := range s.data.Activities {
		if a.DeletedAt == nil {
			activities = append(activities, a)
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.Before(activities[j].CreatedAt)
	})
	return activities, nil
}

func (s *JSONStore) DeleteActivity(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	a, ok := s.data.Activities[id]
	if !ok || a.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().Format(time.RFC3339)
	a.DeletedAt = &now
	s.data.Activities[id] = a
	return s.save()
}

// Completion logs

func (s *JSONStore) AddLog(l models.ActivityLog) error {
	if err := s.loaded(); err != nil {
		return err
	}
	l.CompletedAt = l.CompletedAt.Truncate(time.Second)
	for _, existing := range s.data.Logs {
		if existing.ActivityID != l.ActivityID {
			continue
		}
		// Mirror the SQLite unique indexes.
		if existing.Day == l.Day && l.Source == models.SourceAuto && existing.Source == models.SourceAuto {
			return ErrDuplicateCompletion
		}
		if existing.Source == l.Source && existing.CompletedAt.Equal(l.CompletedAt) {
			return ErrDuplicateCompletion
		}
	}
	s.data.Logs[l.ID] = l
	return s.save()
}

func (s *JSONStore) GetLog(id string) (models.ActivityLog, error) {
	if err := s.loaded(); err != nil {
		return models.ActivityLog{}, err
	}
	l, ok := s.data.Logs[id]
	if !ok {
		return models.ActivityLog{}, ErrNotFound
	}
	return l, nil
}

func (s *JSONStore) collectLogs(match func(models.ActivityLog) bool) []models.ActivityLog {
	var logs []models.ActivityLog
	for _, l := range s.data.Logs {
		if match(l) {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Day != logs[j].Day {
			return logs[i].Day < logs[j].Day
		}
		return logs[i].CompletedAt.Before(logs[j].CompletedAt)
	})
	return logs
}

func (s *JSONStore) GetLogsByDay(day string) ([]models.ActivityLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.collectLogs(func(l models.ActivityLog) bool { return l.Day == day }), nil
}

func (s *JSONStore) GetLogsByRange(fromDay, toDay string) ([]models.ActivityLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.collectLogs(func(l models.ActivityLog) bool { return l.Day >= fromDay && l.Day <= toDay }), nil
}

func (s *JSONStore) GetLogsForActivity(activityID, day string) ([]models.ActivityLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return s.collectLogs(func(l models.ActivityLog) bool {
		return l.ActivityID == activityID && l.Day == day
	}), nil
}

func (s *JSONStore) DeleteLog(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.data.Logs[id]; !ok {
		return ErrNotFound
	}
	delete(s.data.Logs, id)
	return s.save()
}

// Pillar weights

func (s *JSONStore) GetWeights(p models.Pillar) (models.PillarWeights, error) {
	if err := s.loaded(); err != nil {
		return models.PillarWeights{}, err
	}
	w, ok := s.data.Weights[string(p)]
	if !ok {
		return models.PillarWeights{}, ErrNotFound
	}
	return w, nil
}

func (s *JSONStore) SaveWeights(w models.PillarWeights) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Weights[string(w.Pillar)] = w
	return s.save()
}

// Companions

func (s *JSONStore) GetCompanion(species models.Species) (models.Companion, error) {
	if err := s.loaded(); err != nil {
		return models.Companion{}, err
	}
	c, ok := s.data.Companions[string(species)]
	if !ok {
		return models.Companion{}, ErrNotFound
	}
	return c, nil
}

func (s *JSONStore) GetAllCompanions() ([]models.Companion, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var companions []models.Companion
	for _, species := range models.AllSpecies() {
		if c, ok := s.data.Companions[string(species)]; ok {
			companions = append(companions, c)
		}
	}
	return companions, nil
}

func (s *JSONStore) SaveCompanion(c models.Companion) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Companions[string(c.Species)] = c
	return s.save()
}
