package kitchen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestOrderBook(t *testing.T, cfg OrderConfig) *OrderBook {
	t.Helper()
	b, err := NewOrderBook(cfg, testCatalog(t), RoleAuthority, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewOrderBook: %v", err)
	}
	return b
}

func TestOrderBook_CapacityGateDefersGeneration(t *testing.T) {
	// GIVEN a book with a fixed 5s interval and room for 2 active orders
	b := newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 2})
	now := 0.0
	step := func(n int) {
		for i := 0; i < n; i++ {
			now += 1.0
			b.Tick(now, 1.0)
		}
	}

	// WHEN time passes well beyond three intervals
	step(17)

	// THEN only two orders exist; the third is gated on capacity
	if got := len(b.Active()); got != 2 {
		t.Fatalf("active orders at capacity: got %d, want 2", got)
	}

	// WHEN one order completes, freeing a slot
	first := b.Active()[0]
	if err := b.Complete(first.ID, "A"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	step(1)

	// THEN the deferred order appears on the first tick after the slot frees
	active := b.Active()
	if got := len(active); got != 2 {
		t.Fatalf("active orders after completion: got %d, want 2", got)
	}
	if active[1].CreationTime != now {
		t.Errorf("deferred order creation time: got %v, want %v", active[1].CreationTime, now)
	}
}

func TestOrderBook_ExpiryAtExactDeadline(t *testing.T) {
	// GIVEN one order with a 60s limit (easy recipe, multiplier 1.0)
	b := newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 1})
	now := 5.0
	b.Tick(now, 5.0)
	orders := b.Active()
	if len(orders) != 1 {
		t.Fatalf("active orders: got %d, want 1", len(orders))
	}
	o := orders[0]
	assert.Equal(t, 60.0, o.TimeLimit)

	// WHEN the clock reaches one instant before the deadline
	deadline := o.CreationTime + o.TimeLimit
	b.Tick(deadline-0.1, 0.1)
	assert.False(t, o.State().IsExpired, "expired before the deadline")

	// AND then the deadline itself
	b.Tick(deadline, 0.1)

	// THEN the order is expired with the completion flag untouched
	s := o.State()
	assert.True(t, s.IsExpired)
	assert.False(t, s.IsCompleted)
	assert.Empty(t, b.Active())
	assert.Zero(t, o.TimeRemaining(deadline+10), "remaining budget is never negative")
}

func TestOrderBook_CompletedOrderNeverExpires(t *testing.T) {
	b := newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 1})
	b.Tick(5.0, 5.0)
	o := b.Active()[0]
	assert.NoError(t, b.Complete(o.ID, "A"))

	// Run the clock far past the deadline.
	b.Tick(o.CreationTime+o.TimeLimit+100, 1.0)

	s := o.State()
	assert.True(t, s.IsCompleted)
	assert.Equal(t, ActorID("A"), s.CompletedBy)
	assert.False(t, s.IsExpired, "completed order must not expire")
}

func TestOrderBook_CompleteRejectsUnknownAndTerminal(t *testing.T) {
	b := newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 1})
	b.Tick(5.0, 5.0)
	o := b.Active()[0]

	assert.ErrorIs(t, b.Complete(999, "A"), ErrNotFound)

	assert.NoError(t, b.Complete(o.ID, "A"))
	assert.ErrorIs(t, b.Complete(o.ID, "B"), ErrInvalidOperation)
	assert.Equal(t, ActorID("A"), o.State().CompletedBy, "second completion must not overwrite the first")
}

func TestOrderBook_LifecycleHooksFire(t *testing.T) {
	b := newTestOrderBook(t, OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 2})
	var created, completed, expired []OrderID
	b.OnCreated = func(o *Order) { created = append(created, o.ID) }
	b.OnCompleted = func(o *Order) { completed = append(completed, o.ID) }
	b.OnExpired = func(o *Order) { expired = append(expired, o.ID) }

	b.Tick(5.0, 5.0)
	b.Tick(10.0, 5.0)
	assert.Equal(t, []OrderID{1, 2}, created)

	assert.NoError(t, b.Complete(1, "A"))
	assert.Equal(t, []OrderID{1}, completed)

	b.Tick(200.0, 1.0)
	assert.Equal(t, []OrderID{2}, expired)
}

func TestOrderConfig_Validate(t *testing.T) {
	cases := []struct {
		name string
		cfg  OrderConfig
		ok   bool
	}{
		{"valid", OrderConfig{MinInterval: 5, MaxInterval: 15, MaxActiveOrders: 5}, true},
		{"equal bounds", OrderConfig{MinInterval: 5, MaxInterval: 5, MaxActiveOrders: 1}, true},
		{"zero min", OrderConfig{MinInterval: 0, MaxInterval: 15, MaxActiveOrders: 5}, false},
		{"max below min", OrderConfig{MinInterval: 10, MaxInterval: 5, MaxActiveOrders: 5}, false},
		{"zero capacity", OrderConfig{MinInterval: 5, MaxInterval: 15, MaxActiveOrders: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
