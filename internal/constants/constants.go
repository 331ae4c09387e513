package constants

// AppName is used for config paths, keyring service names and log prefixes.
const AppName = "habitkin"

// DayFormat is the canonical calendar-day key (local time).
const DayFormat = "2006-01-02"

// Scoring
const (
	// PointsThreshold is the daily per-pillar goal. Scores are capped here.
	PointsThreshold = 100

	MinActivityPoints = 5
	MaxActivityPoints = 100
)

// Progression
const (
	// XPLevelFactor scales the per-level XP requirement: level * XPLevelFactor.
	XPLevelFactor = 100

	EvolutionStageMin = 1
	EvolutionStageMax = 4
)

// Streaks
const (
	// DefaultWarningWindowHours marks a streak at risk when less than this
	// many hours remain in the local day.
	DefaultWarningWindowHours = 6
)

// Reminders
const (
	// DefaultReminderSchedule checks at-risk streaks every 30 minutes.
	DefaultReminderSchedule = "*/30 * * * *"
)

// Keyring
const (
	DefaultKeyringUser = "whoop-access-token"
)
