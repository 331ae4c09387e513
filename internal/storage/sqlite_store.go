package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	pillar TEXT NOT NULL,
	sub_category TEXT NOT NULL,
	points INTEGER NOT NULL,
	is_habit INTEGER NOT NULL DEFAULT 1,
	trigger_json TEXT,
	created_at TEXT NOT NULL,
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS activity_logs (
	id TEXT PRIMARY KEY,
	activity_id TEXT NOT NULL,
	day TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	pillar TEXT NOT NULL,
	sub_category TEXT NOT NULL,
	points_earned INTEGER NOT NULL,
	source TEXT NOT NULL,
	details_json TEXT
);

-- At most one auto completion per activity per day.
CREATE UNIQUE INDEX IF NOT EXISTS idx_logs_auto_once
	ON activity_logs(activity_id, day) WHERE source = 'auto';

-- Double-tap guard: completed_at is stored at second resolution, so two
-- near-simultaneous requests collide on this index.
CREATE UNIQUE INDEX IF NOT EXISTS idx_logs_debounce
	ON activity_logs(activity_id, completed_at, source);

CREATE INDEX IF NOT EXISTS idx_logs_day ON activity_logs(day);

CREATE TABLE IF NOT EXISTS pillar_weights (
	pillar TEXT NOT NULL,
	category TEXT NOT NULL,
	weight INTEGER NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (pillar, category)
);

CREATE TABLE IF NOT EXISTS companions (
	species TEXT PRIMARY KEY,
	level INTEGER NOT NULL,
	xp INTEGER NOT NULL,
	evolution_stage INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	warning_window_hours INTEGER NOT NULL,
	reminder_schedule TEXT NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return s.seedDefaults()
}

func (s *SQLiteStore) seedDefaults() error {
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			WarningWindowHours: constants.DefaultWarningWindowHours,
			ReminderSchedule:   constants.DefaultReminderSchedule,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	for _, p := range []models.Pillar{models.PillarBody, models.PillarMind} {
		if _, err := s.GetWeights(p); err != nil {
			if err := s.SaveWeights(models.DefaultWeights(p)); err != nil {
				return fmt.Errorf("failed to save default weights: %w", err)
			}
		}
	}

	for _, species := range models.AllSpecies() {
		if _, err := s.GetCompanion(species); err != nil {
			if err := s.SaveCompanion(models.NewCompanion(species)); err != nil {
				return fmt.Errorf("failed to seed companion %s: %w", species, err)
			}
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitkin init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// Settings

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`
		SELECT warning_window_hours, reminder_schedule FROM settings WHERE id = 1`).
		Scan(&settings.WarningWindowHours, &settings.ReminderSchedule)
	if err == sql.ErrNoRows {
		return models.Settings{}, ErrNotFound
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, warning_window_hours, reminder_schedule)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			warning_window_hours = excluded.warning_window_hours,
			reminder_schedule = excluded.reminder_schedule`,
		settings.WarningWindowHours, settings.ReminderSchedule)
	return err
}

// Activities

func (s *SQLiteStore) AddActivity(a models.Activity) error {
	return s.upsertActivity(a)
}

func (s *SQLiteStore) UpdateActivity(a models.Activity) error {
	return s.upsertActivity(a)
}

func (s *SQLiteStore) upsertActivity(a models.Activity) error {
	var triggerJSON sql.NullString
	if a.Trigger != nil {
		data, err := json.Marshal(a.Trigger)
		if err != nil {
			return fmt.Errorf("failed to serialize trigger: %w", err)
		}
		triggerJSON = sql.NullString{String: string(data), Valid: true}
	}

	var deletedAt sql.NullString
	if a.DeletedAt != nil {
		deletedAt = sql.NullString{String: *a.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO activities (id, name, pillar, sub_category, points, is_habit, trigger_json, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			pillar = excluded.pillar,
			sub_category = excluded.sub_category,
			points = excluded.points,
			is_habit = excluded.is_habit,
			trigger_json = excluded.trigger_json,
			deleted_at = excluded.deleted_at`,
		a.ID, a.Name, string(a.Pillar), a.SubCategory.Key(), a.Points, a.IsHabit,
		triggerJSON, a.CreatedAt.Format(time.RFC3339), deletedAt)
	return err
}

func scanActivity(row interface{ Scan(...any) error }) (models.Activity, error) {
	var a models.Activity
	var pillar, subCategory, createdAt string
	var triggerJSON, deletedAt sql.NullString

	err := row.Scan(&a.ID, &a.Name, &pillar, &subCategory, &a.Points, &a.IsHabit, &triggerJSON, &createdAt, &deletedAt)
	if err != nil {
		return models.Activity{}, err
	}

	a.Pillar = models.Pillar(pillar)
	a.SubCategory = models.SubCategoryFromKey(subCategory)

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if triggerJSON.Valid && triggerJSON.String != "" {
		var rule models.AutoTriggerRule
		if err := json.Unmarshal([]byte(triggerJSON.String), &rule); err != nil {
			return models.Activity{}, fmt.Errorf("failed to parse trigger: %w", err)
		}
		a.Trigger = &rule
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.String
	}

	return a, nil
}

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, name, pillar, sub_category, points, is_habit, trigger_json, created_at, deleted_at
		FROM activities WHERE id = ? AND deleted_at IS NULL`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return models.Activity{}, ErrNotFound
	}
	return a, err
}

func (s *SQLiteStore) GetAllActivities() ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, name, pillar, sub_category, points, is_habit, trigger_json, created_at, deleted_at
		FROM activities WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *SQLiteStore) DeleteActivity(id string) error {
	now := time.Now().Format(time.RFC3339)
	res, err := s.db.Exec(`
		UPDATE activities SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Completion logs

func (s *SQLiteStore) AddLog(l models.ActivityLog) error {
	var detailsJSON sql.NullString
	if l.Details != nil {
		data, err := json.Marshal(l.Details)
		if err != nil {
			return fmt.Errorf("failed to serialize details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO activity_logs (id, activity_id, day, completed_at, pillar, sub_category, points_earned, source, details_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ActivityID, l.Day, l.CompletedAt.Truncate(time.Second).Format(time.RFC3339),
		string(l.Pillar), l.SubCategory.Key(), l.PointsEarned, string(l.Source), detailsJSON)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateCompletion
	}
	return err
}

func scanLog(row interface{ Scan(...any) error }) (models.ActivityLog, error) {
	var l models.ActivityLog
	var completedAt, pillar, subCategory, source string
	var detailsJSON sql.NullString

	err := row.Scan(&l.ID, &l.ActivityID, &l.Day, &completedAt, &pillar, &subCategory, &l.PointsEarned, &source, &detailsJSON)
	if err != nil {
		return models.ActivityLog{}, err
	}

	l.Pillar = models.Pillar(pillar)
	l.SubCategory = models.SubCategoryFromKey(subCategory)
	l.Source = models.CompletionSource(source)

	l.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	if detailsJSON.Valid && detailsJSON.String != "" {
		var details models.TrainingDetails
		if err := json.Unmarshal([]byte(detailsJSON.String), &details); err != nil {
			return models.ActivityLog{}, fmt.Errorf("failed to parse details: %w", err)
		}
		l.Details = &details
	}

	return l, nil
}

const logColumns = "id, activity_id, day, completed_at, pillar, sub_category, points_earned, source, details_json"

func (s *SQLiteStore) GetLog(id string) (models.ActivityLog, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM activity_logs WHERE id = ?`, id)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return models.ActivityLog{}, ErrNotFound
	}
	return l, err
}

func (s *SQLiteStore) queryLogs(query string, args ...any) ([]models.ActivityLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) GetLogsByDay(day string) ([]models.ActivityLog, error) {
	return s.queryLogs(`SELECT `+logColumns+` FROM activity_logs WHERE day = ? ORDER BY completed_at`, day)
}

func (s *SQLiteStore) GetLogsByRange(fromDay, toDay string) ([]models.ActivityLog, error) {
	return s.queryLogs(`SELECT `+logColumns+` FROM activity_logs WHERE day >= ? AND day <= ? ORDER BY day, completed_at`, fromDay, toDay)
}

func (s *SQLiteStore) GetLogsForActivity(activityID, day string) ([]models.ActivityLog, error) {
	return s.queryLogs(`SELECT `+logColumns+` FROM activity_logs WHERE activity_id = ? AND day = ? ORDER BY completed_at`, activityID, day)
}

func (s *SQLiteStore) DeleteLog(id string) error {
	res, err := s.db.Exec(`DELETE FROM activity_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Pillar weights

func (s *SQLiteStore) GetWeights(p models.Pillar) (models.PillarWeights, error) {
	rows, err := s.db.Query(`
		SELECT category, weight FROM pillar_weights WHERE pillar = ? ORDER BY position`, string(p))
	if err != nil {
		return models.PillarWeights{}, err
	}
	defer rows.Close()

	w := models.PillarWeights{Pillar: p}
	for rows.Next() {
		var e models.WeightEntry
		if err := rows.Scan(&e.Category, &e.Weight); err != nil {
			return models.PillarWeights{}, err
		}
		w.Entries = append(w.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return models.PillarWeights{}, err
	}
	if len(w.Entries) == 0 {
		return models.PillarWeights{}, ErrNotFound
	}
	return w, nil
}

func (s *SQLiteStore) SaveWeights(w models.PillarWeights) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pillar_weights WHERE pillar = ?`, string(w.Pillar)); err != nil {
		return err
	}
	for i, e := range w.Entries {
		if _, err := tx.Exec(`
			INSERT INTO pillar_weights (pillar, category, weight, position) VALUES (?, ?, ?, ?)`,
			string(w.Pillar), e.Category, e.Weight, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Companions

func (s *SQLiteStore) GetCompanion(species models.Species) (models.Companion, error) {
	var c models.Companion
	var sp string
	err := s.db.QueryRow(`
		SELECT species, level, xp, evolution_stage FROM companions WHERE species = ?`, string(species)).
		Scan(&sp, &c.Level, &c.XP, &c.EvolutionStage)
	if err == sql.ErrNoRows {
		return models.Companion{}, ErrNotFound
	}
	if err != nil {
		return models.Companion{}, err
	}
	c.Species = models.Species(sp)
	return c, nil
}

func (s *SQLiteStore) GetAllCompanions() ([]models.Companion, error) {
	var companions []models.Companion
	for _, species := range models.AllSpecies() {
		c, err := s.GetCompanion(species)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		companions = append(companions, c)
	}
	return companions, nil
}

func (s *SQLiteStore) SaveCompanion(c models.Companion) error {
	_, err := s.db.Exec(`
		INSERT INTO companions (species, level, xp, evolution_stage)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(species) DO UPDATE SET
			level = excluded.level,
			xp = excluded.xp,
			evolution_stage = excluded.evolution_stage`,
		string(c.Species), c.Level, c.XP, c.EvolutionStage)
	return err
}
