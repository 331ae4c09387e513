package whoop

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

// DefaultBaseURL is the WHOOP developer API root.
const DefaultBaseURL = "https://api.prod.whoop.com/developer"

// Client is a minimal read-only WHOOP v2 client. It only knows how to pull
// the latest recovery/sleep/cycle records and a day's workouts, normalized
// into the engine's reading shape. Token refresh and the wider sync pipeline
// are the provider's problem, not ours.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
	}
}

// NewClientWithBaseURL points the client at a different API root (tests).
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

type recoveryResponse struct {
	Records []struct {
		CreatedAt time.Time `json:"created_at"`
		Score     struct {
			RecoveryScore float64 `json:"recovery_score"`
		} `json:"score"`
	} `json:"records"`
}

type sleepResponse struct {
	Records []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"records"`
}

type cycleResponse struct {
	Records []struct {
		Start time.Time `json:"start"`
		Score struct {
			Strain float64 `json:"strain"`
		} `json:"score"`
	} `json:"records"`
}

type workoutResponse struct {
	Records []struct {
		Start   time.Time `json:"start"`
		SportID int       `json:"sport_id"`
	} `json:"records"`
}

func (c *Client) get(path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whoop request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("whoop rejected the access token, run 'habitkin token set' with a fresh one")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whoop returned %s for %s", resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode whoop response: %w", err)
	}
	return nil
}

// LatestReading pulls the most recent recovery, sleep and cycle records and
// folds them into one normalized reading. The reading is dated by the cycle
// start in local time.
func (c *Client) LatestReading() (models.BiometricReading, error) {
	limit := url.Values{"limit": {"1"}}

	var recovery recoveryResponse
	if err := c.get("/v2/recovery", limit, &recovery); err != nil {
		return models.BiometricReading{}, err
	}
	var sleep sleepResponse
	if err := c.get("/v2/activity/sleep", limit, &sleep); err != nil {
		return models.BiometricReading{}, err
	}
	var cycle cycleResponse
	if err := c.get("/v2/cycle", limit, &cycle); err != nil {
		return models.BiometricReading{}, err
	}

	if len(cycle.Records) == 0 {
		return models.BiometricReading{}, fmt.Errorf("whoop returned no cycle data")
	}

	reading := models.BiometricReading{
		Day:    cycle.Records[0].Start.Local().Format(constants.DayFormat),
		Strain: cycle.Records[0].Score.Strain,
	}
	if len(recovery.Records) > 0 {
		reading.Recovery = recovery.Records[0].Score.RecoveryScore
	}
	if len(sleep.Records) > 0 {
		s := sleep.Records[0]
		reading.SleepHours = s.End.Sub(s.Start).Hours()
	}
	return reading, nil
}

// Workouts returns the day's logged workouts as workout events.
func (c *Client) Workouts(day string) ([]models.WorkoutEvent, error) {
	var workouts workoutResponse
	if err := c.get("/v2/activity/workout", url.Values{"limit": {"25"}}, &workouts); err != nil {
		return nil, err
	}

	var events []models.WorkoutEvent
	for _, w := range workouts.Records {
		d := w.Start.Local().Format(constants.DayFormat)
		if day != "" && d != day {
			continue
		}
		events = append(events, models.WorkoutEvent{Day: d, TypeID: w.SportID})
	}
	return events, nil
}

// readingFile is the offline import shape accepted by 'habitkin sync --file'.
type readingFile struct {
	Day        string               `json:"day"`
	Recovery   float64              `json:"recovery"`
	SleepHours float64              `json:"sleep_hours"`
	Strain     float64              `json:"strain"`
	Workouts   []models.WorkoutEvent `json:"workouts,omitempty"`
}

// LoadReadingFile reads a normalized reading (plus optional workouts) from a
// JSON file, for syncing without API access.
func LoadReadingFile(path string) (models.BiometricReading, []models.WorkoutEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.BiometricReading{}, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f readingFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return models.BiometricReading{}, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Day == "" {
		return models.BiometricReading{}, nil, fmt.Errorf("reading file %s is missing a day", path)
	}
	if _, err := time.Parse(constants.DayFormat, f.Day); err != nil {
		return models.BiometricReading{}, nil, fmt.Errorf("invalid day in %s: %w", path, err)
	}

	reading := models.BiometricReading{
		Day:        f.Day,
		Recovery:   f.Recovery,
		SleepHours: f.SleepHours,
		Strain:     f.Strain,
	}
	return reading, f.Workouts, nil
}
