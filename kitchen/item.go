// Defines ItemInstance, the per-item preparation state machine: two
// independent progress tracks (cutting, cooking) whose boolean latches only
// ever transition false→true. All mutation goes through the authority and is
// broadcast via the item's replication cell.

package kitchen

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ItemID is an opaque handle into the world's entity table.
type ItemID int64

// ActorID identifies a player or bot.
type ActorID string

// ItemState is the replicated snapshot of an item's preparation.
type ItemState struct {
	TypeID          string
	CuttingProgress float64 // in [0, 1], monotonic until a new-item event
	CookingProgress float64 // in [0, 2], monotonic until a new-item event
	IsCut           bool    // latch
	IsCooked        bool    // latch
	IsBurned        bool    // latch
	HolderID        ActorID // owning actor, empty when unheld
}

// ItemInstance is a live food item. Created by dispensers, mutated only by
// the authority, destroyed on discard or recipe consumption.
type ItemInstance struct {
	ID    ItemID
	Type  *ItemType
	role  Role
	state *Cell[ItemState]
}

// NewItemInstance creates a raw item of the given type.
func NewItemInstance(id ItemID, t *ItemType, role Role) *ItemInstance {
	name := fmt.Sprintf("item/%d", id)
	return &ItemInstance{
		ID:    id,
		Type:  t,
		role:  role,
		state: NewCell(name, ItemState{TypeID: t.ID}),
	}
}

// State returns the current replicated snapshot.
func (it *ItemInstance) State() ItemState {
	return it.state.Get()
}

// StateCell exposes the replication cell for observers (presentation,
// transport). Observers must not write it.
func (it *ItemInstance) StateCell() *Cell[ItemState] {
	return it.state
}

// Holder returns the actor currently carrying the item, or empty.
func (it *ItemInstance) Holder() ActorID {
	return it.state.Get().HolderID
}

// SetHolder transfers carry ownership. Only the authority may call it.
func (it *ItemInstance) SetHolder(holder ActorID) error {
	s := it.state.Get()
	if s.HolderID == holder {
		return nil
	}
	s.HolderID = holder
	return it.state.Set(it.role, s)
}

// ApplyCutting advances the cutting track. No-op when the type does not
// require cutting or the item is already cut. Progress clamps at exactly
// 1.0, where IsCut latches.
func (it *ItemInstance) ApplyCutting(amount float64) {
	if !it.Type.RequiresCutting || amount <= 0 {
		return
	}
	s := it.state.Get()
	if s.IsCut {
		return
	}
	s.CuttingProgress += amount
	if s.CuttingProgress >= 1.0 {
		s.CuttingProgress = 1.0
		s.IsCut = true
	}
	if err := it.state.Set(it.role, s); err != nil {
		logrus.Warnf("item %d: cutting mutation rejected: %v", it.ID, err)
	}
}

// ApplyCooking advances the cooking track. No-op when the type does not
// require cooking or the item is already burned. Crossing 1.0 latches
// IsCooked without clamping; accumulation continues until 2.0, where
// IsBurned latches and progress pins at exactly 2.0.
func (it *ItemInstance) ApplyCooking(amount float64) {
	if !it.Type.RequiresCooking || amount <= 0 {
		return
	}
	s := it.state.Get()
	if s.IsBurned {
		return
	}
	s.CookingProgress += amount
	if s.CookingProgress >= 1.0 {
		s.IsCooked = true
	}
	if s.CookingProgress >= 2.0 {
		s.CookingProgress = 2.0
		s.IsBurned = true
	}
	if err := it.state.Set(it.role, s); err != nil {
		logrus.Warnf("item %d: cooking mutation rejected: %v", it.ID, err)
	}
}
