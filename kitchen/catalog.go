package kitchen

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Difficulty grades a recipe and scales its time limit.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// validDifficulties maps accepted difficulty strings.
var validDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
	DifficultyExpert: true,
}

// TimeMultiplier returns the factor applied to a recipe's base time limit.
// Harder recipes get less time.
func (d Difficulty) TimeMultiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 0.8
	case DifficultyHard:
		return 0.6
	case DifficultyExpert:
		return 0.4
	default:
		return 1.0
	}
}

// ItemType describes a class of food item in the catalog.
type ItemType struct {
	ID              string  `yaml:"id"`
	DisplayName     string  `yaml:"display_name"`
	RequiresCutting bool    `yaml:"requires_cutting"`
	RequiresCooking bool    `yaml:"requires_cooking"`
	CookingDuration float64 `yaml:"cooking_duration"` // seconds on a cooker to reach cooked (must be > 0 if RequiresCooking)
	BurnThreshold   float64 `yaml:"burn_threshold"`   // seconds an uncollected cooked item takes to burn (must be > 0 if RequiresCooking)
}

// RequiredIngredient is one slot of a recipe.
type RequiredIngredient struct {
	TypeID        string `yaml:"type_id"`
	RequireCut    bool   `yaml:"require_cut"`
	RequireCooked bool   `yaml:"require_cooked"`
}

// Recipe describes a dish that orders can request.
type Recipe struct {
	ID            string               `yaml:"id"`
	DisplayName   string               `yaml:"display_name"`
	Ingredients   []RequiredIngredient `yaml:"ingredients"`
	Difficulty    Difficulty           `yaml:"difficulty"`
	BasePoints    int                  `yaml:"base_points"`
	BaseTimeLimit float64              `yaml:"base_time_limit"` // seconds before difficulty scaling
}

// Catalog holds the immutable item type and recipe data for a match.
// It is loaded once at startup; integrity problems are fatal there, never
// at runtime.
type Catalog struct {
	ItemTypes []*ItemType `yaml:"item_types"`
	Recipes   []*Recipe   `yaml:"recipes"`

	typesByID   map[string]*ItemType
	recipesByID map[string]*Recipe
}

// ParseCatalog decodes catalog YAML with strict field checking and validates it.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// LoadCatalog reads and parses a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Validate checks catalog integrity: this is the only failure class treated
// as fatal, and it surfaces at startup.
func (c *Catalog) Validate() error {
	if len(c.ItemTypes) == 0 {
		return fmt.Errorf("catalog has no item types")
	}
	if len(c.Recipes) == 0 {
		return fmt.Errorf("catalog has no recipes")
	}
	seen := make(map[string]bool, len(c.ItemTypes))
	for _, t := range c.ItemTypes {
		if t.ID == "" {
			return fmt.Errorf("item type with empty id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate item type %q", t.ID)
		}
		seen[t.ID] = true
		if t.RequiresCooking && t.CookingDuration <= 0 {
			return fmt.Errorf("item type %q: cooking_duration must be positive", t.ID)
		}
		if t.RequiresCooking && t.BurnThreshold <= 0 {
			return fmt.Errorf("item type %q: burn_threshold must be positive", t.ID)
		}
	}
	seenRecipes := make(map[string]bool, len(c.Recipes))
	for _, r := range c.Recipes {
		if r.ID == "" {
			return fmt.Errorf("recipe with empty id")
		}
		if seenRecipes[r.ID] {
			return fmt.Errorf("duplicate recipe %q", r.ID)
		}
		seenRecipes[r.ID] = true
		if len(r.Ingredients) == 0 {
			return fmt.Errorf("recipe %q has no ingredients", r.ID)
		}
		if !validDifficulties[r.Difficulty] {
			return fmt.Errorf("recipe %q: unknown difficulty %q", r.ID, r.Difficulty)
		}
		if r.BasePoints <= 0 {
			return fmt.Errorf("recipe %q: base_points must be positive", r.ID)
		}
		if r.BaseTimeLimit <= 0 {
			return fmt.Errorf("recipe %q: base_time_limit must be positive", r.ID)
		}
		for i, ing := range r.Ingredients {
			if !seen[ing.TypeID] {
				return fmt.Errorf("recipe %q ingredient %d: unknown item type %q", r.ID, i, ing.TypeID)
			}
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.typesByID = make(map[string]*ItemType, len(c.ItemTypes))
	for _, t := range c.ItemTypes {
		c.typesByID[t.ID] = t
	}
	c.recipesByID = make(map[string]*Recipe, len(c.Recipes))
	for _, r := range c.Recipes {
		c.recipesByID[r.ID] = r
	}
}

// ItemType looks up an item type by id.
func (c *Catalog) ItemType(id string) (*ItemType, bool) {
	t, ok := c.typesByID[id]
	return t, ok
}

// Recipe looks up a recipe by id.
func (c *Catalog) Recipe(id string) (*Recipe, bool) {
	r, ok := c.recipesByID[id]
	return r, ok
}
