// StationLock grants exclusive use of a shared station to one actor at a
// time. A lock older than its duration is considered stale and silently
// reassigned to the next requester, which recovers from crashed or
// disconnected holders without manual intervention. This timeout is an
// availability measure, not a correctness one.

package kitchen

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StationID identifies a station in the world.
type StationID string

// LockState is the replicated mutual-exclusion state of one station.
type LockState struct {
	Locked   bool
	HolderID ActorID
	LockedAt float64 // match clock seconds when the lock was (re)granted
}

// StationLock serializes access to one shared station.
type StationLock struct {
	stationID StationID
	duration  float64 // seconds before a held lock goes stale
	role      Role
	state     *Cell[LockState]
}

// NewStationLock creates an idle lock for the given station.
func NewStationLock(stationID StationID, duration float64, role Role) *StationLock {
	name := fmt.Sprintf("station/%s/lock", stationID)
	return &StationLock{
		stationID: stationID,
		duration:  duration,
		role:      role,
		state:     NewCell(name, LockState{}),
	}
}

// State returns the current replicated lock state.
func (l *StationLock) State() LockState {
	return l.state.Get()
}

// StateCell exposes the replication cell for observers.
func (l *StationLock) StateCell() *Cell[LockState] {
	return l.state
}

// Holder returns the current holder, or empty when idle.
func (l *StationLock) Holder() ActorID {
	s := l.state.Get()
	if !s.Locked {
		return ""
	}
	return s.HolderID
}

// RequestLock grants the lock to actor when the lock is idle, already held
// by the same actor (idempotent re-acquire, refreshing LockedAt), or stale.
// A live lock held by a different actor is rejected.
func (l *StationLock) RequestLock(actor ActorID, now float64) error {
	s := l.state.Get()
	if s.Locked && s.HolderID != actor {
		if now-s.LockedAt < l.duration {
			return fmt.Errorf("station %s locked by %s: %w", l.stationID, s.HolderID, ErrUnavailable)
		}
		// Stale holder: reassign without requiring a release.
		logrus.Infof("station %s: stale lock of %s reassigned to %s", l.stationID, s.HolderID, actor)
	}
	s.Locked = true
	s.HolderID = actor
	s.LockedAt = now
	return l.state.Set(l.role, s)
}

// ReleaseLock releases the lock if actor is the current holder. A release
// by anyone else is rejected and logged with no state change.
func (l *StationLock) ReleaseLock(actor ActorID) error {
	s := l.state.Get()
	if !s.Locked || s.HolderID != actor {
		logrus.Warnf("station %s: release by non-holder %s ignored", l.stationID, actor)
		return fmt.Errorf("release by non-holder %s: %w", actor, ErrInvalidOperation)
	}
	return l.state.Set(l.role, LockState{})
}

// CanUse reports whether actor may drive the station: the lock is idle or
// held by this actor.
func (l *StationLock) CanUse(actor ActorID) bool {
	s := l.state.Get()
	return !s.Locked || s.HolderID == actor
}
