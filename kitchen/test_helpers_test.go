package kitchen

import (
	"testing"
)

// testCatalogYAML is a small catalog exercising every preparation flag.
const testCatalogYAML = `
item_types:
  - id: tomato
    display_name: Tomato
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
  - id: bruschetta
    display_name: Bruschetta
    difficulty: easy
    base_points: 100
    base_time_limit: 60
    ingredients:
      - type_id: tomato
        require_cut: true
      - type_id: bread
        require_cooked: true
`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ParseCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("test catalog failed to parse: %v", err)
	}
	return c
}

func typeFromCatalog(t *testing.T, c *Catalog, id string) *ItemType {
	t.Helper()
	it, ok := c.ItemType(id)
	if !ok {
		t.Fatalf("test catalog missing item type %q", id)
	}
	return it
}

// newTestItem creates an authority-owned item of the given type.
func newTestItem(t *testing.T, id ItemID, typ *ItemType) *ItemInstance {
	t.Helper()
	return NewItemInstance(id, typ, RoleAuthority)
}
