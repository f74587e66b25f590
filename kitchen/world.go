// The World is the authoritative simulation kernel: a single tick goroutine
// owns every mutation of item, lock, job, and order state. Remote actors
// submit requests through the dispatcher; the world validates and applies
// them at tick boundaries, and no single failed operation ever aborts the
// loop.

package kitchen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/reciperage/kitchensim/kitchen/trace"
)

// WorldConfig holds the runtime knobs of one match.
type WorldConfig struct {
	Seed          int64
	TickRate      float64 // ticks per second
	MatchDuration float64 // seconds

	LockDuration      float64 // seconds before a station lock goes stale
	CutDuration       float64 // seconds for a full cut on a cutting board
	DispenserCooldown float64 // seconds between crate uses
	PlateCapacity     int     // slots per plate

	Orders    OrderConfig
	Validator string // dish validator strategy name
	Trace     trace.Config
}

// DefaultWorldConfig returns the standard match parameters.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Seed:              42,
		TickRate:          20,
		MatchDuration:     180,
		LockDuration:      5,
		CutDuration:       3,
		DispenserCooldown: 1,
		PlateCapacity:     4,
		Orders:            OrderConfig{MinInterval: 5, MaxInterval: 15, MaxActiveOrders: 5},
		Validator:         "standard",
	}
}

// Validate checks configuration sanity.
func (c WorldConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %f", c.TickRate)
	}
	if c.MatchDuration <= 0 {
		return fmt.Errorf("match duration must be positive, got %f", c.MatchDuration)
	}
	if c.LockDuration <= 0 {
		return fmt.Errorf("lock duration must be positive, got %f", c.LockDuration)
	}
	if c.CutDuration <= 0 {
		return fmt.Errorf("cut duration must be positive, got %f", c.CutDuration)
	}
	if c.PlateCapacity <= 0 {
		return fmt.Errorf("plate capacity must be positive, got %d", c.PlateCapacity)
	}
	if !ValidValidators[c.Validator] {
		return fmt.Errorf("unknown validator strategy %q", c.Validator)
	}
	if !trace.IsValidLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return c.Orders.Validate()
}

// World holds the full authoritative state of one match.
type World struct {
	Config  WorldConfig
	Catalog *Catalog
	Clock   float64 // match seconds, advanced by dt each tick
	role    Role

	items        map[ItemID]*ItemInstance
	stations     map[StationID]Station
	stationOrder []StationID // deterministic tick order
	nextItemID   ItemID

	Orders     *OrderBook
	Validator  DishValidator
	Scores     *Scoreboard
	Actors     *ActorDirectory
	Metrics    *Metrics
	Trace      *trace.MatchTrace
	Dispatcher *Dispatcher

	rng *PartitionedRNG
}

// NewWorld creates an authoritative world from a validated config and
// catalog. The same seed, catalog, and request script reproduce the same
// match.
func NewWorld(cfg WorldConfig, catalog *Catalog) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	validator, err := NewDishValidator(cfg.Validator)
	if err != nil {
		return nil, err
	}
	w := &World{
		Config:     cfg,
		Catalog:    catalog,
		role:       RoleAuthority,
		items:      make(map[ItemID]*ItemInstance),
		stations:   make(map[StationID]Station),
		nextItemID: 1,
		Validator:  validator,
		Scores:     NewScoreboard(RoleAuthority),
		Actors:     NewActorDirectory(),
		Metrics:    NewMetrics(),
		Trace:      trace.New(cfg.Trace),
		Dispatcher: NewDispatcher(256),
		rng:        NewPartitionedRNG(NewMatchKey(cfg.Seed)),
	}
	orders, err := NewOrderBook(cfg.Orders, catalog, w.role, w.rng.ForSubsystem(SubsystemOrders))
	if err != nil {
		return nil, err
	}
	w.Orders = orders
	orders.OnCreated = func(o *Order) {
		w.Metrics.OrdersCreated++
		w.Trace.RecordOrder(trace.OrderRecord{Time: w.Clock, OrderID: int(o.ID), Recipe: o.RecipeID, Outcome: "created"})
	}
	orders.OnExpired = func(o *Order) {
		w.Metrics.OrdersExpired++
		w.Trace.RecordOrder(trace.OrderRecord{Time: w.Clock, OrderID: int(o.ID), Recipe: o.RecipeID, Outcome: "expired"})
	}
	orders.OnCompleted = func(o *Order) {
		w.Metrics.OrdersCompleted++
	}
	return w, nil
}

func (w *World) dt() float64 {
	return 1.0 / w.Config.TickRate
}

// === Entity table ===

// SpawnItem creates a new item of the given type, held by holder.
func (w *World) SpawnItem(typeID string, holder ActorID) (*ItemInstance, error) {
	t, ok := w.Catalog.ItemType(typeID)
	if !ok {
		return nil, fmt.Errorf("item type %q: %w", typeID, ErrNotFound)
	}
	item := NewItemInstance(w.nextItemID, t, w.role)
	w.nextItemID++
	if holder != "" {
		if err := item.SetHolder(holder); err != nil {
			return nil, err
		}
	}
	w.items[item.ID] = item
	w.Metrics.ItemsSpawned++
	item.StateCell().Subscribe(func(previous, current ItemState) {
		if !previous.IsBurned && current.IsBurned {
			w.Metrics.ItemsBurned++
			logrus.Infof("item %d (%s) burned", item.ID, current.TypeID)
		}
	})
	logrus.Debugf("spawned item %d (%s) for %q", item.ID, typeID, holder)
	return item, nil
}

// DespawnItem removes an item from the entity table.
func (w *World) DespawnItem(id ItemID) {
	if _, ok := w.items[id]; !ok {
		logrus.Warnf("despawn of unknown item %d", id)
		return
	}
	delete(w.items, id)
	logrus.Debugf("despawned item %d", id)
}

// Item looks up a live item by id.
func (w *World) Item(id ItemID) (*ItemInstance, bool) {
	item, ok := w.items[id]
	return item, ok
}

// HeldBy returns the lowest-id item carried by the actor, or nil.
func (w *World) HeldBy(actor ActorID) *ItemInstance {
	var best *ItemInstance
	for _, item := range w.items {
		if item.Holder() != actor {
			continue
		}
		if best == nil || item.ID < best.ID {
			best = item
		}
	}
	return best
}

// === Stations ===

// AddStation registers a station. Station ids must be unique.
func (w *World) AddStation(st Station) error {
	if _, ok := w.stations[st.ID()]; ok {
		return fmt.Errorf("duplicate station %s: %w", st.ID(), ErrInvalidOperation)
	}
	w.stations[st.ID()] = st
	w.stationOrder = append(w.stationOrder, st.ID())
	return nil
}

// Station looks up a station by id.
func (w *World) Station(id StationID) (Station, bool) {
	st, ok := w.stations[id]
	return st, ok
}

// StationsByKind returns stations of one archetype in registration order.
func (w *World) StationsByKind(kind StationKind) []Station {
	var out []Station
	for _, id := range w.stationOrder {
		if st := w.stations[id]; st.Kind() == kind {
			out = append(out, st)
		}
	}
	return out
}

// BuildStandardKitchen registers the default station layout: one crate per
// catalog item type, a cutting board, a cooking pot, a plate, a serving
// pass, and a trash bin.
func (w *World) BuildStandardKitchen() error {
	for _, t := range w.Catalog.ItemTypes {
		crate := NewDispenser(StationID("crate_"+t.ID), t.ID, w.Config.DispenserCooldown, w.SpawnItem)
		if err := w.AddStation(crate); err != nil {
			return err
		}
	}
	stations := []Station{
		NewCutter("board_1", w.role, w.Config.CutDuration, w.Config.LockDuration),
		NewCooker("pot_1", w.role, w.Config.LockDuration),
		NewAssembler("plate_1", w.role, w.Config.PlateCapacity),
		w.newServing("pass_1"),
		NewDiscard("trash_1", w.despawnDiscarded),
	}
	for _, st := range stations {
		if err := w.AddStation(st); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) newServing(id StationID) *ServingStation {
	serving := NewServingStation(id, w.Orders, w.Catalog, w.Validator, w.Scores, w.DespawnItem)
	serving.OnServed = func(actor ActorID, result ServeResult) {
		w.Metrics.DishesByQuality[result.Quality]++
		w.Metrics.TotalPoints += result.Points
		w.Trace.RecordOrder(trace.OrderRecord{
			Time:    w.Clock,
			OrderID: int(result.OrderID),
			Recipe:  result.Recipe.ID,
			Outcome: "completed",
			Actor:   string(actor),
			Points:  result.Points,
		})
	}
	return serving
}

func (w *World) despawnDiscarded(id ItemID) {
	w.DespawnItem(id)
	w.Metrics.ItemsDiscarded++
}

// === Actors ===

// AddActor registers an actor and its connection.
func (w *World) AddActor(actor ActorID, conn ConnID) {
	w.Actors.Register(actor, conn)
	logrus.Infof("actor %s joined on %s", actor, conn)
}

// RemoveActor handles a disconnect: running jobs whose lock the actor
// holds are cancelled (partial progress discarded), carried items are
// dropped, and the directory entry is removed. Locks the actor held
// elsewhere are left to stale-expire.
func (w *World) RemoveActor(actor ActorID) {
	for _, id := range w.stationOrder {
		if ps, ok := w.stations[id].(*ProcessingStation); ok {
			ps.forceCancel(actor)
		}
	}
	for _, item := range w.items {
		if item.Holder() == actor {
			w.DespawnItem(item.ID)
		}
	}
	w.Actors.Remove(actor)
	logrus.Infof("actor %s left", actor)
}

// === Tick loop ===

// Tick advances the match by one fixed step: drain and apply buffered
// requests, tick every station, then the order book.
func (w *World) Tick() {
	dt := w.dt()
	w.Clock += dt
	now := w.Clock

	for _, req := range w.Dispatcher.Drain() {
		err := w.apply(req, now)
		accepted := err == nil
		if accepted {
			w.Metrics.RequestsApplied++
		} else {
			w.Metrics.RequestsRejected++
			logrus.Debugf("request %s by %s rejected: %v", req.Kind, req.ActorID, err)
		}
		w.Trace.RecordInteraction(trace.InteractionRecord{
			Time:     now,
			Actor:    string(req.ActorID),
			Station:  string(req.Station),
			Kind:     string(req.Kind),
			Accepted: accepted,
			Reason:   failureReason(err),
		})
	}

	for _, id := range w.stationOrder {
		w.stations[id].Tick(now, dt)
	}
	w.Orders.Tick(now, dt)
}

// Run executes the whole match. Each driver runs before every tick; the
// headless CLI uses drivers for scripted cooks, tests for assertions.
func (w *World) Run(drivers ...func(*World)) {
	ticks := int(w.Config.MatchDuration * w.Config.TickRate)
	for i := 0; i < ticks; i++ {
		for _, driver := range drivers {
			driver(w)
		}
		w.Tick()
	}
}

// === Request application ===

// apply validates and executes one buffered request. Every failure is a
// return value; nothing here may panic or abort the tick.
func (w *World) apply(req Request, now float64) error {
	conn, ok := w.Actors.Conn(req.ActorID)
	if !ok {
		return fmt.Errorf("unknown actor %s: %w", req.ActorID, ErrNotFound)
	}
	if conn != req.Sender {
		logrus.Warnf("request %s: sender %s claims actor %s bound to %s", req.Kind, req.Sender, req.ActorID, conn)
		return fmt.Errorf("sender %s is not %s: %w", req.Sender, req.ActorID, ErrAuthorityViolation)
	}
	st, ok := w.stations[req.Station]
	if !ok {
		return fmt.Errorf("station %s: %w", req.Station, ErrNotFound)
	}

	switch req.Kind {
	case RequestPlaceItem:
		ps, ok := st.(*ProcessingStation)
		if !ok {
			return fmt.Errorf("station %s does not process items: %w", req.Station, ErrInvalidOperation)
		}
		item, err := w.heldItem(req.ActorID, req.ItemID)
		if err != nil {
			return err
		}
		return ps.PlaceItem(req.ActorID, item)

	case RequestTakeItem:
		ps, ok := st.(*ProcessingStation)
		if !ok {
			return fmt.Errorf("station %s does not hold single items: %w", req.Station, ErrInvalidOperation)
		}
		_, err := ps.TakeItem(req.ActorID)
		return err

	case RequestStart:
		ps, ok := st.(*ProcessingStation)
		if !ok {
			return fmt.Errorf("station %s has no processing job: %w", req.Station, ErrInvalidOperation)
		}
		return ps.StartProcessing(req.ActorID, now)

	case RequestCancel:
		ps, ok := st.(*ProcessingStation)
		if !ok {
			return fmt.Errorf("station %s has no processing job: %w", req.Station, ErrInvalidOperation)
		}
		return ps.Cancel(req.ActorID)

	case RequestDispense:
		disp, ok := st.(*Dispenser)
		if !ok {
			return fmt.Errorf("station %s is not a dispenser: %w", req.Station, ErrInvalidOperation)
		}
		_, err := disp.Dispense(req.ActorID, now)
		return err

	case RequestPlateAdd:
		plate, ok := st.(*Assembler)
		if !ok {
			return fmt.Errorf("station %s is not a plate: %w", req.Station, ErrInvalidOperation)
		}
		item, err := w.heldItem(req.ActorID, req.ItemID)
		if err != nil {
			return err
		}
		return plate.AddItem(req.ActorID, item)

	case RequestPlateRemove:
		plate, ok := st.(*Assembler)
		if !ok {
			return fmt.Errorf("station %s is not a plate: %w", req.Station, ErrInvalidOperation)
		}
		_, err := plate.RemoveItem(req.ActorID)
		return err

	case RequestDiscardItem:
		bin, ok := st.(*Discard)
		if !ok {
			return fmt.Errorf("station %s is not a trash bin: %w", req.Station, ErrInvalidOperation)
		}
		item, err := w.heldItem(req.ActorID, req.ItemID)
		if err != nil {
			return err
		}
		return bin.DiscardItem(req.ActorID, item)

	case RequestServe:
		serving, ok := st.(*ServingStation)
		if !ok {
			return fmt.Errorf("station %s is not a serving pass: %w", req.Station, ErrInvalidOperation)
		}
		plateStation, ok := w.stations[req.PlateID]
		if !ok {
			return fmt.Errorf("plate %s: %w", req.PlateID, ErrNotFound)
		}
		plate, ok := plateStation.(*Assembler)
		if !ok {
			return fmt.Errorf("station %s is not a plate: %w", req.PlateID, ErrInvalidOperation)
		}
		_, err := serving.Serve(req.ActorID, plate, now)
		return err

	default:
		return fmt.Errorf("unknown request kind %q: %w", req.Kind, ErrInvalidOperation)
	}
}

// heldItem resolves an item argument and verifies the actor carries it.
func (w *World) heldItem(actor ActorID, id ItemID) (*ItemInstance, error) {
	item, ok := w.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if item.Holder() != actor {
		return nil, fmt.Errorf("item %d not held by %s: %w", id, actor, ErrInvalidOperation)
	}
	return item, nil
}
