package kitchen

import "fmt"

// Assembler is a plate: a bounded collection of items awaiting service.
// It has no timer and no lock; contention resolves itself because adding
// and removing are single-tick operations on the authority.
type Assembler struct {
	id       StationID
	role     Role
	capacity int
	items    []*ItemInstance
	contents *Cell[[]ItemID]
}

// NewAssembler creates a plate with the given slot capacity (1..N).
func NewAssembler(id StationID, role Role, capacity int) *Assembler {
	return &Assembler{
		id:       id,
		role:     role,
		capacity: capacity,
		contents: NewCell(fmt.Sprintf("station/%s/contents", id), []ItemID{}),
	}
}

// ID returns the station id.
func (a *Assembler) ID() StationID { return a.id }

// Kind returns KindAssembler.
func (a *Assembler) Kind() StationKind { return KindAssembler }

// Tick is a no-op; plates have no timed behavior.
func (a *Assembler) Tick(now, dt float64) {}

// Capacity returns the slot count.
func (a *Assembler) Capacity() int { return a.capacity }

// Items returns the current item multiset in placement order.
func (a *Assembler) Items() []*ItemInstance {
	out := make([]*ItemInstance, len(a.items))
	copy(out, a.items)
	return out
}

// ContentsCell exposes the replicated item-id list for observers.
func (a *Assembler) ContentsCell() *Cell[[]ItemID] { return a.contents }

// AddItem places an item on the plate. A full plate rejects with no state
// change.
func (a *Assembler) AddItem(actor ActorID, item *ItemInstance) error {
	if len(a.items) >= a.capacity {
		return fmt.Errorf("plate %s at capacity %d: %w", a.id, a.capacity, ErrUnavailable)
	}
	if err := item.SetHolder(""); err != nil {
		return err
	}
	a.items = append(a.items, item)
	return a.broadcast()
}

// RemoveItem takes back the most recently placed item.
func (a *Assembler) RemoveItem(actor ActorID) (*ItemInstance, error) {
	if len(a.items) == 0 {
		return nil, fmt.Errorf("plate %s is empty: %w", a.id, ErrNotFound)
	}
	item := a.items[len(a.items)-1]
	if err := item.SetHolder(actor); err != nil {
		return nil, err
	}
	a.items = a.items[:len(a.items)-1]
	return item, a.broadcast()
}

// drain empties the plate and returns its items. Used by the serving
// station when a dish is consumed by an order.
func (a *Assembler) drain() []*ItemInstance {
	items := a.items
	a.items = nil
	_ = a.broadcast()
	return items
}

func (a *Assembler) broadcast() error {
	ids := make([]ItemID, len(a.items))
	for i, it := range a.items {
		ids[i] = it.ID
	}
	return a.contents.Set(a.role, ids)
}
