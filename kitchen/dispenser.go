package kitchen

import (
	"fmt"
)

// SpawnFunc creates a new item in the world's entity table, held by the
// given actor. Wired by the world at station construction.
type SpawnFunc func(typeID string, holder ActorID) (*ItemInstance, error)

// DespawnFunc destroys an item in the world's entity table.
type DespawnFunc func(id ItemID)

// Dispenser is a stateless item source (ingredient crate). A cooldown
// timer gates repeat use; this is pacing, not mutual exclusion, so there
// is no lock.
type Dispenser struct {
	id       StationID
	typeID   string
	cooldown float64
	lastAt   float64
	spawn    SpawnFunc
}

// NewDispenser creates a crate dispensing items of the given type.
func NewDispenser(id StationID, typeID string, cooldown float64, spawn SpawnFunc) *Dispenser {
	return &Dispenser{
		id:       id,
		typeID:   typeID,
		cooldown: cooldown,
		lastAt:   -cooldown, // first use is never gated
		spawn:    spawn,
	}
}

// ID returns the station id.
func (d *Dispenser) ID() StationID { return d.id }

// Kind returns KindDispenser.
func (d *Dispenser) Kind() StationKind { return KindDispenser }

// TypeID returns the item type this crate dispenses.
func (d *Dispenser) TypeID() string { return d.typeID }

// Tick is a no-op; the cooldown compares timestamps.
func (d *Dispenser) Tick(now, dt float64) {}

// Dispense spawns a fresh item into the actor's hands. Rejected while on
// cooldown.
func (d *Dispenser) Dispense(actor ActorID, now float64) (*ItemInstance, error) {
	if now-d.lastAt < d.cooldown {
		return nil, fmt.Errorf("dispenser %s on cooldown: %w", d.id, ErrUnavailable)
	}
	item, err := d.spawn(d.typeID, actor)
	if err != nil {
		return nil, err
	}
	d.lastAt = now
	return item, nil
}
