package models

// Settings are user-tunable knobs persisted alongside the data.
type Settings struct {
	WarningWindowHours int    `json:"warning_window_hours"`
	ReminderSchedule   string `json:"reminder_schedule"` // cron expression
}
