package models

// Species identifies one of the five habitanimals. Each species tracks the
// activities of one predefined sub-category.
type Species string

const (
	SpeciesEmber  Species = "ember"  // training
	SpeciesLumen  Species = "lumen"  // sleep
	SpeciesSprout Species = "sprout" // nutrition
	SpeciesWisp   Species = "wisp"   // meditation
	SpeciesSage   Species = "sage"   // learning
)

var speciesByCategory = map[PredefinedCategory]Species{
	CategoryTraining:   SpeciesEmber,
	CategorySleep:      SpeciesLumen,
	CategoryNutrition:  SpeciesSprout,
	CategoryMeditation: SpeciesWisp,
	CategoryLearning:   SpeciesSage,
}

var categoryBySpecies = map[Species]PredefinedCategory{
	SpeciesEmber:  CategoryTraining,
	SpeciesLumen:  CategorySleep,
	SpeciesSprout: CategoryNutrition,
	SpeciesWisp:   CategoryMeditation,
	SpeciesSage:   CategoryLearning,
}

// SpeciesFor maps a sub-category to its companion. Custom sub-categories have
// no companion and report ok=false.
func SpeciesFor(c SubCategory) (Species, bool) {
	if c.IsCustom() {
		return "", false
	}
	s, ok := speciesByCategory[c.Predefined]
	return s, ok
}

func (s Species) Category() (PredefinedCategory, bool) {
	c, ok := categoryBySpecies[s]
	return c, ok
}

func AllSpecies() []Species {
	return []Species{SpeciesEmber, SpeciesLumen, SpeciesSprout, SpeciesWisp, SpeciesSage}
}

// Companion is a habitanimal. Level and XP are cached together; the evolution
// stage is derived from level against the configured cutoffs.
type Companion struct {
	Species        Species `json:"species"`
	Level          int     `json:"level"`           // >= 1
	XP             int     `json:"xp"`              // cumulative, >= 0
	EvolutionStage int     `json:"evolution_stage"` // 1-4
}

// NewCompanion returns a freshly hatched companion.
func NewCompanion(s Species) Companion {
	return Companion{Species: s, Level: 1, XP: 0, EvolutionStage: 1}
}
