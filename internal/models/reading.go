package models

// BiometricReading is a normalized daily reading from the biometric provider.
// How readings are fetched or refreshed is the provider's concern; the engine
// only consumes them.
type BiometricReading struct {
	Day        string  `json:"day"` // YYYY-MM-DD
	Recovery   float64 `json:"recovery"`
	SleepHours float64 `json:"sleep_hours"`
	Strain     float64 `json:"strain"`
}

// WorkoutEvent is a single logged workout tagged with the provider's sport
// type identifier.
type WorkoutEvent struct {
	Day    string `json:"day"`
	TypeID int    `json:"type_id"`
}
