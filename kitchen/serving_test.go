package kitchen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// servingFixture wires an order book with one active bruschetta order, a
// plate, and a serving station that records despawns.
type servingFixture struct {
	book      *OrderBook
	plate     *Assembler
	serving   *ServingStation
	scores    *Scoreboard
	despawned []ItemID
}

func newServingFixture(t *testing.T) *servingFixture {
	t.Helper()
	c := testCatalog(t)
	f := &servingFixture{
		book:   newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 3}),
		plate:  NewAssembler("plate_1", RoleAuthority, 4),
		scores: NewScoreboard(RoleAuthority),
	}
	validator, err := NewDishValidator("standard")
	if err != nil {
		t.Fatalf("NewDishValidator: %v", err)
	}
	f.serving = NewServingStation("pass_1", f.book, c, validator, f.scores,
		func(id ItemID) { f.despawned = append(f.despawned, id) })
	f.book.Tick(5.0, 5.0) // creates order 1
	return f
}

func TestServe_MatchingDishCompletesOrderAndAwards(t *testing.T) {
	// GIVEN an active order and a perfect dish on the plate
	c := testCatalog(t)
	f := newServingFixture(t)
	for _, item := range bruschettaDish(t, c, 1.0) {
		assert.NoError(t, f.plate.AddItem("A", item))
	}
	var served []ServeResult
	f.serving.OnServed = func(actor ActorID, result ServeResult) { served = append(served, result) }

	// WHEN A serves 30s into the order's 60s budget
	result, err := f.serving.Serve("A", f.plate, 35.0)

	// THEN the order completes, points land on the scoreboard, and the dish
	// is consumed
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	assert.Equal(t, QualityPerfect, result.Quality)
	assert.Equal(t, 260, result.Points) // 100*2 + round(2*30)
	order, _ := f.book.Order(result.OrderID)
	assert.True(t, order.State().IsCompleted)
	assert.Equal(t, ActorID("A"), order.State().CompletedBy)
	assert.Equal(t, 260, f.scores.Total("A"))
	assert.Empty(t, f.plate.Items())
	assert.ElementsMatch(t, []ItemID{1, 2}, f.despawned)
	assert.Len(t, served, 1)
}

func TestServe_EmptyPlateRejected(t *testing.T) {
	f := newServingFixture(t)

	_, err := f.serving.Serve("A", f.plate, 10.0)

	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestServe_NonMatchingDishStaysOnPlate(t *testing.T) {
	// GIVEN a dish that matches no active order (uncut tomato, raw bread)
	c := testCatalog(t)
	f := newServingFixture(t)
	tomato := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	bread := newTestItem(t, 2, typeFromCatalog(t, c, "bread"))
	assert.NoError(t, f.plate.AddItem("A", tomato))
	assert.NoError(t, f.plate.AddItem("A", bread))

	// WHEN A tries to serve
	_, err := f.serving.Serve("A", f.plate, 10.0)

	// THEN the call fails and nothing is consumed or awarded
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Len(t, f.plate.Items(), 2)
	assert.Empty(t, f.despawned)
	assert.Zero(t, f.scores.Total("A"))
	assert.Len(t, f.book.Active(), 1)
}

func TestServe_MatchesOldestOrderFirst(t *testing.T) {
	// GIVEN two active orders for the same recipe
	c := testCatalog(t)
	f := newServingFixture(t)
	f.book.Tick(10.0, 5.0) // creates order 2
	orders := f.book.Active()
	if len(orders) != 2 {
		t.Fatalf("active orders: got %d, want 2", len(orders))
	}
	for _, item := range bruschettaDish(t, c, 1.0) {
		assert.NoError(t, f.plate.AddItem("A", item))
	}

	// WHEN the dish is served
	result, err := f.serving.Serve("A", f.plate, 12.0)

	// THEN the earlier order is the one completed
	assert.NoError(t, err)
	assert.Equal(t, orders[0].ID, result.OrderID)
	assert.False(t, orders[1].Terminal())
}
