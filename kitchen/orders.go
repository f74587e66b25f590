// The order lifecycle: timed generation against a capacity gate, per-tick
// expiry scanning, and write-once terminal flags. Completed and expired are
// mutually exclusive; single-writer tick order makes that structural rather
// than a race.

package kitchen

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// OrderID identifies one outstanding recipe request.
type OrderID int

// OrderState is the replicated terminal-flag snapshot of an order.
type OrderState struct {
	IsCompleted bool    // write-once
	IsExpired   bool    // write-once
	CompletedBy ActorID // set with IsCompleted
}

// Order is an outstanding request for a completed recipe with a time
// budget. CreationTime and TimeLimit never change after creation.
type Order struct {
	ID           OrderID
	RecipeID     string
	CreationTime float64
	TimeLimit    float64
	PointValue   int

	role  Role
	state *Cell[OrderState]
}

// State returns the order's replicated terminal flags.
func (o *Order) State() OrderState { return o.state.Get() }

// StateCell exposes the order's replication cell for observers.
func (o *Order) StateCell() *Cell[OrderState] { return o.state }

// Terminal reports whether the order has completed or expired.
func (o *Order) Terminal() bool {
	s := o.state.Get()
	return s.IsCompleted || s.IsExpired
}

// TimeRemaining returns the non-negative budget left at the given clock.
func (o *Order) TimeRemaining(now float64) float64 {
	remaining := o.TimeLimit - (now - o.CreationTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OrderConfig holds pacing parameters for order generation.
type OrderConfig struct {
	MinInterval     float64 `yaml:"min_interval"`      // seconds, lower bound of the generation interval
	MaxInterval     float64 `yaml:"max_interval"`      // seconds, upper bound of the generation interval
	MaxActiveOrders int     `yaml:"max_active_orders"` // capacity gate on concurrent non-terminal orders
}

// Validate checks pacing parameter sanity.
func (c OrderConfig) Validate() error {
	if c.MinInterval <= 0 || c.MaxInterval < c.MinInterval {
		return fmt.Errorf("order intervals must satisfy 0 < min <= max, got [%f, %f]", c.MinInterval, c.MaxInterval)
	}
	if c.MaxActiveOrders <= 0 {
		return fmt.Errorf("max_active_orders must be positive, got %d", c.MaxActiveOrders)
	}
	return nil
}

// OrderBook owns the lifecycle of all orders in a match: generation,
// expiry, completion. Mutated only on the authority's tick.
type OrderBook struct {
	cfg     OrderConfig
	catalog *Catalog
	role    Role
	rng     *rand.Rand

	orders       []*Order
	nextID       OrderID
	timer        float64 // seconds since the last created order
	nextInterval float64 // current uniform draw from [MinInterval, MaxInterval]

	// Lifecycle hooks, invoked synchronously on the tick goroutine.
	OnCreated   func(*Order)
	OnCompleted func(*Order)
	OnExpired   func(*Order)
}

// NewOrderBook creates an order book drawing recipes and intervals from
// the given RNG.
func NewOrderBook(cfg OrderConfig, catalog *Catalog, role Role, rng *rand.Rand) (*OrderBook, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &OrderBook{
		cfg:     cfg,
		catalog: catalog,
		role:    role,
		rng:     rng,
		nextID:  1,
	}
	b.nextInterval = b.drawInterval()
	return b, nil
}

func (b *OrderBook) drawInterval() float64 {
	return b.cfg.MinInterval + b.rng.Float64()*(b.cfg.MaxInterval-b.cfg.MinInterval)
}

// Active returns all non-terminal orders in creation order.
func (b *OrderBook) Active() []*Order {
	out := make([]*Order, 0, len(b.orders))
	for _, o := range b.orders {
		if !o.Terminal() {
			out = append(out, o)
		}
	}
	return out
}

// Order looks up an order by id.
func (b *OrderBook) Order(id OrderID) (*Order, bool) {
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Tick advances the generation timer and scans for expirations. When the
// timer has elapsed but the book is at capacity, the timer keeps its value
// and the order is created by the first check after capacity frees up, not
// by a missed tick.
func (b *OrderBook) Tick(now, dt float64) {
	b.timer += dt
	if b.timer >= b.nextInterval && len(b.Active()) < b.cfg.MaxActiveOrders {
		b.generate(now)
		b.timer = 0
		b.nextInterval = b.drawInterval()
	}
	b.expireOverdue(now)
}

func (b *OrderBook) generate(now float64) {
	recipe := b.catalog.Recipes[b.rng.Intn(len(b.catalog.Recipes))]
	order := &Order{
		ID:           b.nextID,
		RecipeID:     recipe.ID,
		CreationTime: now,
		TimeLimit:    recipe.BaseTimeLimit * recipe.Difficulty.TimeMultiplier(),
		PointValue:   recipe.BasePoints,
		role:         b.role,
		state:        NewCell(fmt.Sprintf("order/%d", b.nextID), OrderState{}),
	}
	b.nextID++
	b.orders = append(b.orders, order)
	logrus.Infof("order %d created: %s, %.1fs limit", order.ID, recipe.ID, order.TimeLimit)
	if b.OnCreated != nil {
		b.OnCreated(order)
	}
}

func (b *OrderBook) expireOverdue(now float64) {
	for _, o := range b.orders {
		s := o.state.Get()
		if s.IsCompleted || s.IsExpired {
			continue
		}
		if now-o.CreationTime >= o.TimeLimit {
			s.IsExpired = true
			_ = o.state.Set(b.role, s)
			logrus.Infof("order %d expired", o.ID)
			if b.OnExpired != nil {
				b.OnExpired(o)
			}
		}
	}
}

// Complete marks an order fulfilled by the given actor. Succeeds only
// against an order with both terminal flags false; a completed order can
// never subsequently expire.
func (b *OrderBook) Complete(id OrderID, actor ActorID) error {
	o, ok := b.Order(id)
	if !ok {
		logrus.Warnf("complete order %d: unknown id", id)
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	s := o.state.Get()
	if s.IsCompleted || s.IsExpired {
		logrus.Warnf("complete order %d: already terminal", id)
		return fmt.Errorf("order %d already terminal: %w", id, ErrInvalidOperation)
	}
	s.IsCompleted = true
	s.CompletedBy = actor
	if err := o.state.Set(b.role, s); err != nil {
		return err
	}
	logrus.Infof("order %d completed by %s", id, actor)
	if b.OnCompleted != nil {
		b.OnCompleted(o)
	}
	return nil
}
