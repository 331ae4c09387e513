package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
	"github.com/julianstephens/habitkin/internal/storage"
	"github.com/julianstephens/habitkin/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}

// parseDay accepts YYYY-MM-DD, "today" or "yesterday". Empty means today.
func parseDay(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.Format(constants.DayFormat), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(constants.DayFormat), nil
	}
	d, err := time.ParseInLocation(constants.DayFormat, s, now.Location())
	if err != nil {
		return "", fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", s)
	}
	return d.Format(constants.DayFormat), nil
}

// resolveActivity looks an activity up by ID first, then by case-insensitive
// unique name match.
func resolveActivity(store storage.Provider, ref string) (models.Activity, error) {
	if a, err := store.GetActivity(ref); err == nil {
		return a, nil
	}

	all, err := store.GetAllActivities()
	if err != nil {
		return models.Activity{}, err
	}

	var matches []models.Activity
	for _, a := range all {
		if strings.EqualFold(a.Name, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Activity{}, fmt.Errorf("no activity matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Activity{}, fmt.Errorf("%d activities named %q, use the ID instead", len(matches), ref)
	}
}

func formatCategory(sc models.SubCategory) string {
	if sc.IsCustom() {
		return sc.CustomID + " (custom)"
	}
	return string(sc.Predefined)
}
