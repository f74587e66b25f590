package cmd

import (
	"github.com/reciperage/kitchensim/kitchen"
)

// defaultCatalogYAML is the embedded fallback catalog used when --catalog
// is not given. Durations are in seconds.
const defaultCatalogYAML = `
item_types:
  - id: tomato
    display_name: Tomato
    requires_cutting: true
  - id: lettuce
    display_name: Lettuce
    requires_cutting: true
  - id: bread
    display_name: Bread
    requires_cooking: true
    cooking_duration: 4
    burn_threshold: 6
  - id: patty
    display_name: Patty
    requires_cutting: true
    requires_cooking: true
    cooking_duration: 6
    burn_threshold: 5
  - id: cheese
    display_name: Cheese

recipes:
  - id: garden_salad
    display_name: Garden Salad
    difficulty: easy
    base_points: 80
    base_time_limit: 60
    ingredients:
      - type_id: tomato
        require_cut: true
      - type_id: lettuce
        require_cut: true
  - id: bruschetta
    display_name: Bruschetta
    difficulty: medium
    base_points: 100
    base_time_limit: 75
    ingredients:
      - type_id: tomato
        require_cut: true
      - type_id: bread
        require_cooked: true
  - id: cheeseburger
    display_name: Cheeseburger
    difficulty: hard
    base_points: 150
    base_time_limit: 90
    ingredients:
      - type_id: bread
        require_cooked: true
      - type_id: patty
        require_cut: true
        require_cooked: true
      - type_id: cheese
  - id: grilled_platter
    display_name: Grilled Platter
    difficulty: expert
    base_points: 200
    base_time_limit: 120
    ingredients:
      - type_id: patty
        require_cut: true
        require_cooked: true
      - type_id: bread
        require_cooked: true
      - type_id: tomato
        require_cut: true
      - type_id: lettuce
        require_cut: true
`

// DefaultCatalog parses and validates the embedded catalog.
func DefaultCatalog() (*kitchen.Catalog, error) {
	return kitchen.ParseCatalog([]byte(defaultCatalogYAML))
}
