// The generic timed-processing engine: Idle → Occupied → Processing →
// Complete | Cancelled → Idle. Cutters and cookers are ProcessingStations
// specialized by a transform; assemblers, dispensers, discards and serving
// counters are separate interactables that share the Station interface.

package kitchen

import (
	"fmt"
)

// StationKind names a station archetype.
type StationKind string

const (
	KindCutter    StationKind = "cutter"
	KindCooker    StationKind = "cooker"
	KindAssembler StationKind = "assembler"
	KindDispenser StationKind = "dispenser"
	KindDiscard   StationKind = "discard"
	KindServing   StationKind = "serving"
)

// StationPhase is the replicated lifecycle phase of a processing station.
type StationPhase string

const (
	PhaseIdle       StationPhase = "idle"       // no item
	PhaseOccupied   StationPhase = "occupied"   // item placed, no timer
	PhaseProcessing StationPhase = "processing" // timer running
	PhaseComplete   StationPhase = "complete"   // transform applied, item collectible
	PhaseCancelled  StationPhase = "cancelled"  // job aborted, item untransformed
)

// JobState is the replicated progress of a timed transformation.
type JobState struct {
	ItemID           ItemID
	Progress         float64 // in [0, 1]
	RequiredDuration float64 // seconds for the full transform
}

// Station is the minimal surface the world needs from any archetype.
type Station interface {
	ID() StationID
	Kind() StationKind
	Tick(now, dt float64)
}

// transform specializes a ProcessingStation per archetype.
type transform interface {
	kind() StationKind
	// canProcess is the archetype's placement predicate.
	canProcess(item *ItemInstance) error
	// duration returns the required processing time for the item.
	duration(item *ItemInstance) float64
	// complete applies the transform when progress reaches 1.0.
	complete(item *ItemInstance)
	// tickComplete runs while a completed item sits uncollected.
	tickComplete(item *ItemInstance, dt float64)
}

// ProcessingStation drives one timed transformation at a time under the
// station's lock discipline.
type ProcessingStation struct {
	id    StationID
	role  Role
	lock  *StationLock
	tr    transform
	item  *ItemInstance
	phase *Cell[StationPhase]
	job   *Cell[JobState]
}

func newProcessingStation(id StationID, role Role, lockDuration float64, tr transform) *ProcessingStation {
	return &ProcessingStation{
		id:    id,
		role:  role,
		lock:  NewStationLock(id, lockDuration, role),
		tr:    tr,
		phase: NewCell(fmt.Sprintf("station/%s/phase", id), PhaseIdle),
		job:   NewCell(fmt.Sprintf("station/%s/job", id), JobState{}),
	}
}

// ID returns the station id.
func (st *ProcessingStation) ID() StationID { return st.id }

// Kind returns the archetype kind.
func (st *ProcessingStation) Kind() StationKind { return st.tr.kind() }

// Lock exposes the station's mutual-exclusion state.
func (st *ProcessingStation) Lock() *StationLock { return st.lock }

// Phase returns the current lifecycle phase.
func (st *ProcessingStation) Phase() StationPhase { return st.phase.Get() }

// PhaseCell exposes the phase replication cell for observers.
func (st *ProcessingStation) PhaseCell() *Cell[StationPhase] { return st.phase }

// JobCell exposes the job-progress replication cell for observers.
func (st *ProcessingStation) JobCell() *Cell[JobState] { return st.job }

// Item returns the item on the station, or nil.
func (st *ProcessingStation) Item() *ItemInstance { return st.item }

// PlaceItem puts an item on an idle station. The archetype predicate
// decides compatibility; an incompatible item is rejected with no state
// change.
func (st *ProcessingStation) PlaceItem(actor ActorID, item *ItemInstance) error {
	if st.phase.Get() != PhaseIdle {
		return fmt.Errorf("station %s is not idle: %w", st.id, ErrInvalidOperation)
	}
	if !st.lock.CanUse(actor) {
		return fmt.Errorf("station %s in use: %w", st.id, ErrUnavailable)
	}
	if err := st.tr.canProcess(item); err != nil {
		return err
	}
	if err := item.SetHolder(""); err != nil {
		return err
	}
	st.item = item
	return st.phase.Set(st.role, PhaseOccupied)
}

// StartProcessing acquires the station lock for the actor, resets job
// progress, and starts the timer.
func (st *ProcessingStation) StartProcessing(actor ActorID, now float64) error {
	phase := st.phase.Get()
	if phase != PhaseOccupied && phase != PhaseCancelled {
		return fmt.Errorf("station %s has no idle item: %w", st.id, ErrInvalidOperation)
	}
	if err := st.lock.RequestLock(actor, now); err != nil {
		return err
	}
	if err := st.job.Set(st.role, JobState{
		ItemID:           st.item.ID,
		Progress:         0,
		RequiredDuration: st.tr.duration(st.item),
	}); err != nil {
		return err
	}
	return st.phase.Set(st.role, PhaseProcessing)
}

// Cancel aborts a running job: progress resets, the lock is released, and
// the item stays untransformed. A partial transform is never applied.
func (st *ProcessingStation) Cancel(actor ActorID) error {
	if st.phase.Get() != PhaseProcessing {
		return fmt.Errorf("station %s is not processing: %w", st.id, ErrInvalidOperation)
	}
	if st.lock.Holder() != actor {
		return fmt.Errorf("station %s held by %s: %w", st.id, st.lock.Holder(), ErrUnavailable)
	}
	if err := st.job.Set(st.role, JobState{}); err != nil {
		return err
	}
	if err := st.lock.ReleaseLock(actor); err != nil {
		return err
	}
	return st.phase.Set(st.role, PhaseCancelled)
}

// TakeItem hands the station's item to the actor and returns the station
// to Idle. Not allowed while a job is running.
func (st *ProcessingStation) TakeItem(actor ActorID) (*ItemInstance, error) {
	phase := st.phase.Get()
	if phase == PhaseProcessing {
		return nil, fmt.Errorf("station %s is still processing: %w", st.id, ErrInvalidOperation)
	}
	if st.item == nil {
		return nil, fmt.Errorf("station %s has no item: %w", st.id, ErrNotFound)
	}
	if !st.lock.CanUse(actor) {
		return nil, fmt.Errorf("station %s in use: %w", st.id, ErrUnavailable)
	}
	item := st.item
	if err := item.SetHolder(actor); err != nil {
		return nil, err
	}
	st.item = nil
	if err := st.job.Set(st.role, JobState{}); err != nil {
		return nil, err
	}
	return item, st.phase.Set(st.role, PhaseIdle)
}

// Tick advances a running job by dt and applies the archetype transform on
// completion. Completed-but-uncollected items keep receiving the
// archetype's post-completion behavior (a cooker keeps cooking toward the
// burn latch).
func (st *ProcessingStation) Tick(now, dt float64) {
	switch st.phase.Get() {
	case PhaseProcessing:
		job := st.job.Get()
		job.Progress += dt / job.RequiredDuration
		if job.Progress >= 1.0 {
			job.Progress = 1.0
			_ = st.job.Set(st.role, job)
			st.tr.complete(st.item)
			_ = st.phase.Set(st.role, PhaseComplete)
			if holder := st.lock.Holder(); holder != "" {
				_ = st.lock.ReleaseLock(holder)
			}
			return
		}
		_ = st.job.Set(st.role, job)
	case PhaseComplete:
		if st.item != nil {
			st.tr.tickComplete(st.item, dt)
		}
	}
}

// forceCancel aborts any running job on behalf of a vanished holder
// (disconnect). Partial progress is discarded.
func (st *ProcessingStation) forceCancel(actor ActorID) {
	if st.phase.Get() != PhaseProcessing || st.lock.Holder() != actor {
		return
	}
	_ = st.job.Set(st.role, JobState{})
	_ = st.lock.ReleaseLock(actor)
	_ = st.phase.Set(st.role, PhaseCancelled)
}
