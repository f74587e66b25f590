// Dish validation and scoring strategies. The strategy is chosen by name
// from configuration at match start; all implementations are pure functions
// over item snapshots.

package kitchen

import (
	"fmt"
	"math"
)

// DishQuality is a discrete grade for an assembled dish.
type DishQuality string

const (
	QualityWrong      DishQuality = "wrong"
	QualityAcceptable DishQuality = "acceptable"
	QualityGood       DishQuality = "good"
	QualityPerfect    DishQuality = "perfect"
)

// Scoring constants for the standard strategy.
const (
	perfectScoreMultiplier    = 2
	goodScoreMultiplier       = 1
	acceptableScoreMultiplier = 0.5
	timeBonusPerSecond        = 2

	// Cooking bands: Perfect keeps progress in [0.9, 1.0]; anything
	// outside [0.8, 1.1] loses Good as well.
	perfectCookMin = 0.9
	perfectCookMax = 1.0
	goodCookMin    = 0.8
	goodCookMax    = 1.1
)

// DishValidator validates an assembled item multiset against a recipe and
// computes its quality and score. Implementations must be deterministic
// and side-effect free.
type DishValidator interface {
	ValidateDish(items []*ItemInstance, recipe *Recipe) bool
	GetDishQuality(items []*ItemInstance, recipe *Recipe) DishQuality
	CalculateScore(items []*ItemInstance, recipe *Recipe, timeRemaining float64) int
}

// ValidValidators is the set of recognized validator strategy names.
var ValidValidators = map[string]bool{"": true, "standard": true, "strict": true}

// NewDishValidator returns the strategy for the given config name. The
// empty name selects the standard strategy.
func NewDishValidator(name string) (DishValidator, error) {
	switch name {
	case "", "standard":
		return StandardValidator{}, nil
	case "strict":
		return StrictValidator{}, nil
	default:
		return nil, fmt.Errorf("unknown validator strategy %q", name)
	}
}

// StandardValidator is the default match-and-band strategy.
type StandardValidator struct{}

// ValidateDish reports whether the multiset matches the recipe: sizes are
// equal and every required ingredient has a non-burned item of the right
// type satisfying its cut/cooked flags.
func (StandardValidator) ValidateDish(items []*ItemInstance, recipe *Recipe) bool {
	if recipe == nil || len(items) != len(recipe.Ingredients) {
		return false
	}
	for _, required := range recipe.Ingredients {
		found := false
		for _, item := range items {
			s := item.State()
			if s.TypeID != required.TypeID {
				continue
			}
			if required.RequireCut && !s.IsCut {
				continue
			}
			if required.RequireCooked && !s.IsCooked {
				continue
			}
			if s.IsBurned {
				continue
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// GetDishQuality grades a valid dish by how closely each required
// ingredient sits in its preparation band. A valid dish never grades
// Wrong: an overcooked-but-valid dish degrades to Acceptable.
func (v StandardValidator) GetDishQuality(items []*ItemInstance, recipe *Recipe) DishQuality {
	if !v.ValidateDish(items, recipe) {
		return QualityWrong
	}
	isPerfect, isGood := true, true
	for _, required := range recipe.Ingredients {
		item := firstOfType(items, required.TypeID)
		if item == nil {
			continue
		}
		s := item.State()
		if required.RequireCut && s.CuttingProgress < 1.0 {
			isPerfect = false
		}
		if required.RequireCooked {
			if s.CookingProgress < perfectCookMin || s.CookingProgress > perfectCookMax {
				isPerfect = false
			}
			if s.CookingProgress < goodCookMin || s.CookingProgress > goodCookMax {
				isGood = false
			}
		}
	}
	switch {
	case isPerfect:
		return QualityPerfect
	case isGood:
		return QualityGood
	default:
		return QualityAcceptable
	}
}

// CalculateScore computes basePoints scaled by the quality multiplier plus
// a time bonus, floored at zero. Pure and deterministic.
func (v StandardValidator) CalculateScore(items []*ItemInstance, recipe *Recipe, timeRemaining float64) int {
	return scoreForQuality(v.GetDishQuality(items, recipe), recipe, timeRemaining)
}

// StrictValidator additionally requires every cooked ingredient to sit in
// the Good band for the dish to validate at all: an overcooked dish is
// Wrong here, not Acceptable. Selectable per game mode.
type StrictValidator struct{}

// ValidateDish applies the standard match plus the Good cooking band.
func (StrictValidator) ValidateDish(items []*ItemInstance, recipe *Recipe) bool {
	if !(StandardValidator{}).ValidateDish(items, recipe) {
		return false
	}
	for _, required := range recipe.Ingredients {
		if !required.RequireCooked {
			continue
		}
		item := firstOfType(items, required.TypeID)
		if item == nil {
			continue
		}
		p := item.State().CookingProgress
		if p < goodCookMin || p > goodCookMax {
			return false
		}
	}
	return true
}

// GetDishQuality grades as the standard strategy over the stricter
// validity predicate.
func (v StrictValidator) GetDishQuality(items []*ItemInstance, recipe *Recipe) DishQuality {
	if !v.ValidateDish(items, recipe) {
		return QualityWrong
	}
	return (StandardValidator{}).GetDishQuality(items, recipe)
}

// CalculateScore computes the standard formula over this strategy's grade.
func (v StrictValidator) CalculateScore(items []*ItemInstance, recipe *Recipe, timeRemaining float64) int {
	return scoreForQuality(v.GetDishQuality(items, recipe), recipe, timeRemaining)
}

func scoreForQuality(quality DishQuality, recipe *Recipe, timeRemaining float64) int {
	if quality == QualityWrong {
		return 0
	}
	score := recipe.BasePoints
	switch quality {
	case QualityPerfect:
		score *= perfectScoreMultiplier
	case QualityGood:
		score *= goodScoreMultiplier
	case QualityAcceptable:
		score = int(math.Round(float64(score) * acceptableScoreMultiplier))
	}
	score += int(math.Round(timeRemaining * timeBonusPerSecond))
	if score < 0 {
		return 0
	}
	return score
}

func firstOfType(items []*ItemInstance, typeID string) *ItemInstance {
	for _, item := range items {
		if item.State().TypeID == typeID {
			return item
		}
	}
	return nil
}
