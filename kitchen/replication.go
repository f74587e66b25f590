package kitchen

import (
	"github.com/sirupsen/logrus"
)

// Role identifies whether this process owns canonical state or observes it.
// It is threaded explicitly through constructors rather than inferred from
// ambient context, so "am I authoritative" is always visible at call sites.
type Role string

const (
	// RoleAuthority is the single role permitted to mutate canonical state.
	RoleAuthority Role = "authority"
	// RoleReplica observes replicated state and never writes it.
	RoleReplica Role = "replica"
)

// ChangeFunc receives the previous and new value of a replicated cell.
type ChangeFunc[T any] func(previous, current T)

// Cell is the replication primitive shared by every stateful entity: a
// single-writer observable value with a monotonic per-cell version.
//
// The authority is the sole writer. Every successful Set bumps the version
// and delivers (previous, new) to all subscribers in subscription order.
// Delivery is ordered per cell; no atomicity is promised across cells, so
// observers may transiently see one changed field without a causally
// related second field.
//
// Not safe for concurrent use. All writes happen on the authority's tick
// goroutine; transport adapters subscribe and forward.
type Cell[T any] struct {
	name    string
	value   T
	version uint64
	subs    []ChangeFunc[T]
}

// NewCell creates a replicated cell with an initial value at version 0.
func NewCell[T any](name string, initial T) *Cell[T] {
	return &Cell[T]{name: name, value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Version returns the monotonic write counter. Observers can use it to
// discard stale out-of-band reads of the same cell.
func (c *Cell[T]) Version() uint64 {
	return c.version
}

// Name returns the cell's replication name.
func (c *Cell[T]) Name() string {
	return c.name
}

// Subscribe registers fn for all subsequent changes. Subscribers are
// invoked synchronously on the authority's goroutine and must not write
// back into the core.
func (c *Cell[T]) Subscribe(fn ChangeFunc[T]) {
	c.subs = append(c.subs, fn)
}

// Set replaces the value. Only the authority may call it; a replica
// attempting a direct write is rejected and logged, with no notification.
func (c *Cell[T]) Set(role Role, value T) error {
	if role != RoleAuthority {
		logrus.Warnf("replication: rejected direct write to %q by role %q", c.name, role)
		return ErrNotAuthority
	}
	previous := c.value
	c.value = value
	c.version++
	for _, fn := range c.subs {
		fn(previous, value)
	}
	return nil
}
