package kitchen

// Discard is a trash bin: accepts any item and destroys it. No transform,
// no lock, no timer.
type Discard struct {
	id      StationID
	despawn DespawnFunc
}

// NewDiscard creates a trash bin.
func NewDiscard(id StationID, despawn DespawnFunc) *Discard {
	return &Discard{id: id, despawn: despawn}
}

// ID returns the station id.
func (d *Discard) ID() StationID { return d.id }

// Kind returns KindDiscard.
func (d *Discard) Kind() StationKind { return KindDiscard }

// Tick is a no-op.
func (d *Discard) Tick(now, dt float64) {}

// DiscardItem destroys the item.
func (d *Discard) DiscardItem(actor ActorID, item *ItemInstance) error {
	d.despawn(item.ID)
	return nil
}
