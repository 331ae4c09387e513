package engine

import (
	"fmt"
	"math"

	"github.com/julianstephens/habitkin/internal/models"
)

// SetWeight applies a user edit setting one category to newValue and
// redistributes the remainder across the other categories in proportion to
// their prior magnitudes. The result always sums to exactly 100.
//
// When every other weight is zero there is no proportion to scale by: an
// increase request is a no-op (the edited weight already holds 100), and a
// decrease splits the freed amount equally across the others.
func SetWeight(w models.PillarWeights, category string, newValue int) (models.PillarWeights, error) {
	if newValue < 0 || newValue > 100 {
		return w, fmt.Errorf("weight must be between 0 and 100, got %d", newValue)
	}

	target := -1
	for i, e := range w.Entries {
		if e.Category == category {
			target = i
			break
		}
	}
	if target == -1 {
		return w, fmt.Errorf("unknown category: %s", category)
	}
	if w.Entries[target].Weight == newValue {
		return w, nil
	}

	othersTotal := 0
	for i, e := range w.Entries {
		if i != target {
			othersTotal += e.Weight
		}
	}

	out := models.PillarWeights{Pillar: w.Pillar, Entries: make([]models.WeightEntry, len(w.Entries))}
	copy(out.Entries, w.Entries)
	out.Entries[target].Weight = newValue

	remainder := 100 - newValue
	if othersTotal == 0 {
		if newValue > w.Entries[target].Weight {
			// Nothing to take the increase from.
			return w, nil
		}
		if len(w.Entries) == 1 {
			return w, fmt.Errorf("cannot redistribute weights for a single category")
		}
		// Equal split; proportions are undefined over all-zero weights.
		share := remainder / (len(w.Entries) - 1)
		for i := range out.Entries {
			if i != target {
				out.Entries[i].Weight = share
			}
		}
	} else {
		for i := range out.Entries {
			if i == target {
				continue
			}
			ratio := float64(w.Entries[i].Weight) / float64(othersTotal)
			out.Entries[i].Weight = int(math.Round(float64(remainder) * ratio))
		}
	}

	// Integer rounding can leave the total off by up to len-1 either way.
	// Absorb the residual into the first other entry that stays in range,
	// walking entries in stored order so the correction is deterministic.
	residual := 100 - out.Total()
	for i := range out.Entries {
		if residual == 0 {
			break
		}
		if i == target {
			continue
		}
		corrected := out.Entries[i].Weight + residual
		if corrected >= 0 && corrected <= 100 {
			out.Entries[i].Weight = corrected
			residual = 0
		}
	}
	if residual != 0 {
		// Spread one unit at a time; only reachable with extreme rounding.
		step := 1
		if residual < 0 {
			step = -1
		}
		for residual != 0 {
			moved := false
			for i := range out.Entries {
				if residual == 0 {
					break
				}
				if i == target {
					continue
				}
				corrected := out.Entries[i].Weight + step
				if corrected >= 0 && corrected <= 100 {
					out.Entries[i].Weight = corrected
					residual -= step
					moved = true
				}
			}
			if !moved {
				return w, fmt.Errorf("cannot redistribute weights for %s", category)
			}
		}
	}

	return out, nil
}
