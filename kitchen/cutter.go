package kitchen

import "fmt"

// cutterTransform accepts items that still need cutting and applies the
// full cut on completion. No burn risk.
type cutterTransform struct {
	processingTime float64
}

func (c *cutterTransform) kind() StationKind { return KindCutter }

func (c *cutterTransform) canProcess(item *ItemInstance) error {
	if !item.Type.RequiresCutting {
		return fmt.Errorf("%s does not require cutting: %w", item.Type.ID, ErrInvalidOperation)
	}
	if item.State().IsCut {
		return fmt.Errorf("%s is already cut: %w", item.Type.ID, ErrInvalidOperation)
	}
	return nil
}

func (c *cutterTransform) duration(*ItemInstance) float64 { return c.processingTime }

func (c *cutterTransform) complete(item *ItemInstance) {
	item.ApplyCutting(1.0)
}

func (c *cutterTransform) tickComplete(*ItemInstance, float64) {}

// NewCutter creates a cutting-board station. processingTime is the seconds
// a full cut takes regardless of item type.
func NewCutter(id StationID, role Role, processingTime, lockDuration float64) *ProcessingStation {
	return newProcessingStation(id, role, lockDuration, &cutterTransform{processingTime: processingTime})
}
