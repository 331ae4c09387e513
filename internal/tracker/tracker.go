package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/engine"
	"github.com/julianstephens/habitkin/internal/logger"
	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/storage"
)

// Tracker orchestrates the scoring, streak, trigger and progression engines
// over a storage provider. Every mutation recomputes derived state as one
// unit: the returned status always reflects the log set after the change.
type Tracker struct {
	store storage.Provider
	evo   engine.EvolutionConfig
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store, evo: engine.DefaultEvolutionConfig()}
}

// NewWithEvolution overrides the evolution-stage cutoffs.
func NewWithEvolution(store storage.Provider, evo engine.EvolutionConfig) *Tracker {
	return &Tracker{store: store, evo: evo}
}

// PillarStatus is one pillar's derived state for a day.
type PillarStatus struct {
	Score    engine.PillarScore `json:"score"`
	Weighted float64            `json:"weighted_progress"`
	Streak   models.StreakState `json:"streak"`
}

// DayStatus is the full derived picture after a mutation or on demand.
type DayStatus struct {
	Day        string                         `json:"day"`
	Pillars    map[models.Pillar]PillarStatus `json:"pillars"`
	Companions []models.Companion             `json:"companions"`
}

// CompletionResult reports what a completion (or uncompletion) changed.
// NoOp is set when nothing changed: the completion already existed, or the
// log to remove was already gone.
type CompletionResult struct {
	Log      models.ActivityLog
	Progress *engine.ProgressResult
	NoOp     bool
	Status   DayStatus
}

// completionIndex adapts the store to engine.CompletionIndex.
type completionIndex struct {
	store storage.Provider
}

func (idx completionIndex) HasCompletion(activityID, day string) bool {
	logs, err := idx.store.GetLogsForActivity(activityID, day)
	if err != nil {
		logger.Warn("completion lookup failed", "activity", activityID, "day", day, "error", err)
		return false
	}
	return len(logs) > 0
}

// CompleteActivity records a completion for an activity. The timestamp is
// truncated to the second, which doubles as the double-tap guard: a second
// near-simultaneous manual request lands on the same key and is reported as
// a no-op instead of producing a second log. Auto completions are capped at
// one per activity per day no matter the timestamp.
func (t *Tracker) CompleteActivity(activityID string, at time.Time, source models.CompletionSource, details *models.TrainingDetails) (CompletionResult, error) {
	activity, err := t.store.GetActivity(activityID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("activity %s: %w", activityID, err)
	}

	at = at.Truncate(time.Second)
	day := at.Format(constants.DayFormat)

	if source == models.SourceAuto {
		existing, err := t.store.GetLogsForActivity(activityID, day)
		if err != nil {
			return CompletionResult{}, err
		}
		if len(existing) > 0 {
			return t.noOpResult(at)
		}
	}

	entry := models.ActivityLog{
		ID:           uuid.NewString(),
		ActivityID:   activity.ID,
		Day:          day,
		CompletedAt:  at,
		Pillar:       activity.Pillar,
		SubCategory:  activity.SubCategory,
		PointsEarned: activity.Points,
		Source:       source,
		Details:      details,
	}

	if err := t.store.AddLog(entry); err != nil {
		if errors.Is(err, storage.ErrDuplicateCompletion) {
			logger.Debug("duplicate completion rejected", "activity", activityID, "day", day, "source", source)
			return t.noOpResult(at)
		}
		return CompletionResult{}, err
	}
	logger.Info("activity completed", "activity", activity.Name, "points", entry.PointsEarned, "source", source)

	progress := t.applyProgression(activity.SubCategory, entry.PointsEarned)

	// A recorded completion is itself an event other rules may be waiting on.
	if err := t.evaluateCompletionChain(activity.ID, at); err != nil {
		return CompletionResult{}, err
	}

	status, err := t.DayStatus(at)
	if err != nil {
		return CompletionResult{}, err
	}
	return CompletionResult{Log: entry, Progress: progress, Status: status}, nil
}

// UncompleteActivity removes a completion and symmetrically takes its XP
// back. A missing log is a no-op, not an error.
func (t *Tracker) UncompleteActivity(logID string, now time.Time) (CompletionResult, error) {
	entry, err := t.store.GetLog(logID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return t.noOpResult(now)
		}
		return CompletionResult{}, err
	}

	if err := t.store.DeleteLog(logID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return t.noOpResult(now)
		}
		return CompletionResult{}, err
	}
	logger.Info("completion removed", "activity", entry.ActivityID, "day", entry.Day, "points", entry.PointsEarned)

	progress := t.applyProgression(entry.SubCategory, -entry.PointsEarned)

	status, err := t.DayStatus(now)
	if err != nil {
		return CompletionResult{}, err
	}
	return CompletionResult{Log: entry, Progress: progress, Status: status}, nil
}

// applyProgression feeds XP to the companion of the sub-category, if one
// exists. Custom sub-categories have no companion and earn no XP.
func (t *Tracker) applyProgression(category models.SubCategory, deltaXP int) *engine.ProgressResult {
	species, ok := models.SpeciesFor(category)
	if !ok {
		return nil
	}

	companion, err := t.store.GetCompanion(species)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			companion = models.NewCompanion(species)
		} else {
			logger.Error("failed to load companion", "species", species, "error", err)
			return nil
		}
	}

	result := engine.ApplyXP(&companion, deltaXP, t.evo)
	if err := t.store.SaveCompanion(companion); err != nil {
		logger.Error("failed to save companion", "species", species, "error", err)
		return nil
	}

	if result.LeveledUp {
		logger.Info("companion leveled up", "species", species, "level", result.Level)
	}
	if result.Evolved {
		logger.Info("companion evolved", "species", species, "stage", result.Stage)
	}
	return &result
}

// EvaluateTriggers runs every auto-trigger rule against one event and
// persists the synthesized completions. Safe to re-invoke with the same
// event: rules already satisfied for the day are no-ops.
func (t *Tracker) EvaluateTriggers(ev engine.TriggerEvent, now time.Time) ([]CompletionResult, error) {
	rules, activities, err := t.ruleSet()
	if err != nil {
		return nil, err
	}

	matches := engine.EvaluateTriggers(rules, activities, ev, completionIndex{store: t.store})

	var results []CompletionResult
	for _, m := range matches {
		res, err := t.CompleteActivity(m.ActivityID, completionTime(ev.Day, now), models.SourceAuto, nil)
		if err != nil {
			return results, err
		}
		if !res.NoOp {
			logger.Info("auto-trigger fired", "rule", m.Rule.Type, "activity", m.ActivityID, "day", ev.Day)
			results = append(results, res)
		}
	}
	return results, nil
}

// evaluateCompletionChain fires activity_completed rules that were waiting on
// this completion. Chains are bounded: each rule completes its own activity
// at most once per day, so recursion through CompleteActivity terminates.
func (t *Tracker) evaluateCompletionChain(completedActivityID string, at time.Time) error {
	rules, activities, err := t.ruleSet()
	if err != nil {
		return err
	}

	ev := engine.TriggerEvent{
		Day:                 at.Format(constants.DayFormat),
		CompletedActivityID: completedActivityID,
	}
	matches := engine.EvaluateTriggers(rules, activities, ev, completionIndex{store: t.store})
	for _, m := range matches {
		if _, err := t.CompleteActivity(m.ActivityID, at, models.SourceAuto, nil); err != nil {
			return err
		}
		logger.Info("chained completion", "from", completedActivityID, "to", m.ActivityID)
	}
	return nil
}

// ruleSet collects the live activities and their attached trigger rules.
func (t *Tracker) ruleSet() ([]models.AutoTriggerRule, map[string]models.Activity, error) {
	all, err := t.store.GetAllActivities()
	if err != nil {
		return nil, nil, err
	}

	activities := make(map[string]models.Activity, len(all))
	var rules []models.AutoTriggerRule
	for _, a := range all {
		activities[a.ID] = a
		if a.Trigger != nil {
			rule := *a.Trigger
			rule.ActivityID = a.ID
			rules = append(rules, rule)
		}
	}
	return rules, activities, nil
}

// DayStatus derives scores, weighted progress, streaks and companion state
// for the day containing now.
func (t *Tracker) DayStatus(now time.Time) (DayStatus, error) {
	day := now.Format(constants.DayFormat)

	todayLogs, err := t.store.GetLogsByDay(day)
	if err != nil {
		return DayStatus{}, err
	}
	scores := engine.ScoreDay(todayLogs)

	qualified, err := t.qualifiedDays(now)
	if err != nil {
		return DayStatus{}, err
	}

	settings, err := t.store.GetSettings()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return DayStatus{}, err
	}
	warnWindow := settings.WarningWindowHours
	if warnWindow <= 0 {
		warnWindow = constants.DefaultWarningWindowHours
	}

	status := DayStatus{Day: day, Pillars: make(map[models.Pillar]PillarStatus, 2)}
	for _, pillar := range []models.Pillar{models.PillarBody, models.PillarMind} {
		weights, err := t.store.GetWeights(pillar)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return DayStatus{}, err
			}
			weights = models.DefaultWeights(pillar)
		}

		status.Pillars[pillar] = PillarStatus{
			Score:    scores[pillar],
			Weighted: engine.WeightedProgress(todayLogs, weights),
			Streak:   engine.ComputeStreak(pillar, qualified[pillar], now, warnWindow),
		}
	}

	companions, err := t.store.GetAllCompanions()
	if err != nil {
		return DayStatus{}, err
	}
	status.Companions = companions

	return status, nil
}

// qualifiedDays rebuilds per-pillar qualification history from the raw log
// set. Derived, never incremented: retroactive deletions and timezone shifts
// come out right because every evaluation walks the actual records.
func (t *Tracker) qualifiedDays(now time.Time) (map[models.Pillar]map[string]bool, error) {
	from := now.AddDate(-1, 0, 0).Format(constants.DayFormat)
	to := now.Format(constants.DayFormat)
	logs, err := t.store.GetLogsByRange(from, to)
	if err != nil {
		return nil, err
	}

	byDay := map[string][]models.ActivityLog{}
	for _, l := range logs {
		byDay[l.Day] = append(byDay[l.Day], l)
	}

	qualified := map[models.Pillar]map[string]bool{
		models.PillarBody: {},
		models.PillarMind: {},
	}
	for day, dayLogs := range byDay {
		for pillar, score := range engine.ScoreDay(dayLogs) {
			if score.Completed {
				qualified[pillar][day] = true
			}
		}
	}
	return qualified, nil
}

func (t *Tracker) noOpResult(now time.Time) (CompletionResult, error) {
	status, err := t.DayStatus(now)
	if err != nil {
		return CompletionResult{}, err
	}
	return CompletionResult{NoOp: true, Status: status}, nil
}

// completionTime picks the timestamp for a synthesized completion: the
// current instant when the event is for today, otherwise noon of the event's
// day so backfilled readings land inside the right calendar day.
func completionTime(day string, now time.Time) time.Time {
	if day == now.Format(constants.DayFormat) || day == "" {
		return now
	}
	d, err := time.ParseInLocation(constants.DayFormat, day, now.Location())
	if err != nil {
		return now
	}
	return d.Add(12 * time.Hour)
}
