package kitchen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCatalog_ValidCatalogIndexesLookups(t *testing.T) {
	c := testCatalog(t)

	tomato, ok := c.ItemType("tomato")
	if !ok {
		t.Fatal("tomato missing from index")
	}
	if !tomato.RequiresCutting || tomato.RequiresCooking {
		t.Errorf("tomato flags: cutting=%v cooking=%v", tomato.RequiresCutting, tomato.RequiresCooking)
	}

	recipe, ok := c.Recipe("bruschetta")
	if !ok {
		t.Fatal("bruschetta missing from index")
	}
	if len(recipe.Ingredients) != 2 {
		t.Errorf("ingredients: got %d, want 2", len(recipe.Ingredients))
	}

	if _, ok := c.ItemType("nope"); ok {
		t.Error("lookup of unknown item type succeeded")
	}
	if _, ok := c.Recipe("nope"); ok {
		t.Error("lookup of unknown recipe succeeded")
	}
}

func TestParseCatalog_UnknownFieldRejected(t *testing.T) {
	_, err := ParseCatalog([]byte(`
item_types:
  - id: tomato
    display_name: Tomato
    chop_speed: 3
recipes: []
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chop_speed")
}

func TestCatalogValidate_IntegrityFailures(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"no item types",
			`{item_types: [], recipes: []}`,
			"no item types",
		},
		{
			"duplicate type id",
			`
item_types:
  - {id: tomato, display_name: Tomato}
  - {id: tomato, display_name: Tomato}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 10, base_time_limit: 30, ingredients: [{type_id: tomato}]}
`,
			"duplicate item type",
		},
		{
			"cooking without duration",
			`
item_types:
  - {id: bread, display_name: Bread, requires_cooking: true}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 10, base_time_limit: 30, ingredients: [{type_id: bread}]}
`,
			"cooking_duration",
		},
		{
			"cooking without burn threshold",
			`
item_types:
  - {id: bread, display_name: Bread, requires_cooking: true, cooking_duration: 4}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 10, base_time_limit: 30, ingredients: [{type_id: bread}]}
`,
			"burn_threshold",
		},
		{
			"recipe references unknown type",
			`
item_types:
  - {id: tomato, display_name: Tomato}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 10, base_time_limit: 30, ingredients: [{type_id: ghost}]}
`,
			"unknown item type",
		},
		{
			"unknown difficulty",
			`
item_types:
  - {id: tomato, display_name: Tomato}
recipes:
  - {id: r, display_name: R, difficulty: brutal, base_points: 10, base_time_limit: 30, ingredients: [{type_id: tomato}]}
`,
			"unknown difficulty",
		},
		{
			"non-positive points",
			`
item_types:
  - {id: tomato, display_name: Tomato}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 0, base_time_limit: 30, ingredients: [{type_id: tomato}]}
`,
			"base_points",
		},
		{
			"recipe with no ingredients",
			`
item_types:
  - {id: tomato, display_name: Tomato}
recipes:
  - {id: r, display_name: R, difficulty: easy, base_points: 10, base_time_limit: 30, ingredients: []}
`,
			"no ingredients",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDifficulty_TimeMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, DifficultyEasy.TimeMultiplier())
	assert.Equal(t, 0.8, DifficultyMedium.TimeMultiplier())
	assert.Equal(t, 0.6, DifficultyHard.TimeMultiplier())
	assert.Equal(t, 0.4, DifficultyExpert.TimeMultiplier())
}
