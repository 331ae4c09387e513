package engine

import (
	"github.com/julianstephens/habitkin/internal/constants"
	"github.com/julianstephens/habitkin/internal/models"
)

// PillarScore is the daily result for one pillar. Points is capped at the
// threshold; RawPoints keeps the uncapped sum for display.
type PillarScore struct {
	Points    int  `json:"points"`
	RawPoints int  `json:"raw_points"`
	Completed bool `json:"completed"`
}

// ScoreDay computes the capped per-pillar score from one day's logs. Every
// log contributes its snapshotted points, so activity edits after the fact
// never move historical scores.
func ScoreDay(logs []models.ActivityLog) map[models.Pillar]PillarScore {
	raw := map[models.Pillar]int{
		models.PillarBody: 0,
		models.PillarMind: 0,
	}
	for _, l := range logs {
		raw[l.Pillar] += l.PointsEarned
	}

	scores := make(map[models.Pillar]PillarScore, len(raw))
	for pillar, points := range raw {
		capped := points
		if capped > constants.PointsThreshold {
			capped = constants.PointsThreshold
		}
		scores[pillar] = PillarScore{
			Points:    capped,
			RawPoints: points,
			Completed: capped >= constants.PointsThreshold,
		}
	}
	return scores
}

// WeightedProgress folds one pillar's logs into a 0-100 progress figure where
// each sub-category contributes at most its configured weight. Display only:
// pillar completion is decided by the capped raw score, never by weights.
func WeightedProgress(logs []models.ActivityLog, weights models.PillarWeights) float64 {
	byCategory := map[string]int{}
	for _, l := range logs {
		if l.Pillar != weights.Pillar {
			continue
		}
		byCategory[l.SubCategory.Key()] += l.PointsEarned
	}

	progress := 0.0
	for _, e := range weights.Entries {
		points := byCategory[e.Category]
		fraction := float64(points) / float64(constants.PointsThreshold)
		if fraction > 1 {
			fraction = 1
		}
		progress += float64(e.Weight) * fraction
	}
	if progress > 100 {
		progress = 100
	}
	return progress
}
