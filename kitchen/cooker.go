package kitchen

import "fmt"

// cookerTransform cooks an item to exactly 1.0 over the type's cooking
// duration, then keeps driving the cooking track while the item sits
// uncollected. Burning is a consequence of inaction, not a timer failure:
// the uncollected item drifts from 1.0 to the 2.0 burn latch over the
// type's burn threshold.
type cookerTransform struct{}

func (c *cookerTransform) kind() StationKind { return KindCooker }

func (c *cookerTransform) canProcess(item *ItemInstance) error {
	if !item.Type.RequiresCooking {
		return fmt.Errorf("%s does not require cooking: %w", item.Type.ID, ErrInvalidOperation)
	}
	if item.State().IsBurned {
		return fmt.Errorf("%s is burned: %w", item.Type.ID, ErrInvalidOperation)
	}
	return nil
}

func (c *cookerTransform) duration(item *ItemInstance) float64 {
	return item.Type.CookingDuration
}

func (c *cookerTransform) complete(item *ItemInstance) {
	// Bring the cooking track to exactly 1.0. Re-cooking an already
	// cooked item applies nothing here; the burn window below still runs.
	item.ApplyCooking(1.0 - item.State().CookingProgress)
}

func (c *cookerTransform) tickComplete(item *ItemInstance, dt float64) {
	item.ApplyCooking(dt / item.Type.BurnThreshold)
}

// NewCooker creates a cooking-pot station. The processing duration comes
// from each item's catalog entry.
func NewCooker(id StationID, role Role, lockDuration float64) *ProcessingStation {
	return newProcessingStation(id, role, lockDuration, &cookerTransform{})
}
