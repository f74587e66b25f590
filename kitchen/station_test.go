package kitchen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tickUntil(st *ProcessingStation, now *float64, dt float64, phase StationPhase, maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		*now += dt
		st.Tick(*now, dt)
		if st.Phase() == phase {
			return true
		}
	}
	return false
}

func TestCutter_FullCycleAppliesCutOnCompletion(t *testing.T) {
	// GIVEN an idle cutting board and an uncut tomato
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	item := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	now := 0.0

	// WHEN the item is placed, processing started, and time passes
	if err := st.PlaceItem("A", item); err != nil {
		t.Fatalf("PlaceItem: %v", err)
	}
	if st.Phase() != PhaseOccupied {
		t.Fatalf("phase after place: got %s, want occupied", st.Phase())
	}
	if err := st.StartProcessing("A", now); err != nil {
		t.Fatalf("StartProcessing: %v", err)
	}
	if !tickUntil(st, &now, 0.1, PhaseComplete, 100) {
		t.Fatal("station never completed")
	}

	// THEN the transform applied exactly once and the lock was released
	s := item.State()
	if !s.IsCut || s.CuttingProgress != 1.0 {
		t.Errorf("item after completion: cut=%v progress=%v, want cut at 1.0", s.IsCut, s.CuttingProgress)
	}
	if st.Lock().State().Locked {
		t.Error("lock still held after completion")
	}

	// AND the item can be collected, returning the station to idle
	got, err := st.TakeItem("A")
	if err != nil {
		t.Fatalf("TakeItem: %v", err)
	}
	if got.ID != item.ID {
		t.Errorf("collected item: got %d, want %d", got.ID, item.ID)
	}
	if got.Holder() != "A" {
		t.Errorf("holder after take: got %q, want A", got.Holder())
	}
	if st.Phase() != PhaseIdle {
		t.Errorf("phase after take: got %s, want idle", st.Phase())
	}
}

func TestPlaceItem_IncompatibleItemRejectedWithoutMutation(t *testing.T) {
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)

	// Cheese never needs cutting.
	cheese := newTestItem(t, 1, typeFromCatalog(t, c, "cheese"))
	err := st.PlaceItem("A", cheese)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, PhaseIdle, st.Phase())
	assert.Nil(t, st.Item())

	// An already-cut tomato is rejected the same way.
	tomato := newTestItem(t, 2, typeFromCatalog(t, c, "tomato"))
	tomato.ApplyCutting(1.0)
	err = st.PlaceItem("A", tomato)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, PhaseIdle, st.Phase())
}

func TestStartProcessing_LockedByOtherActorFails(t *testing.T) {
	// GIVEN a station whose lock is held by B
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	item := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	if err := st.PlaceItem("A", item); err != nil {
		t.Fatalf("PlaceItem: %v", err)
	}
	if err := st.Lock().RequestLock("B", 0.0); err != nil {
		t.Fatalf("B's lock request failed: %v", err)
	}

	// WHEN A tries to start processing
	err := st.StartProcessing("A", 1.0)

	// THEN the start is rejected and no job exists
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("StartProcessing: got %v, want ErrUnavailable", err)
	}
	if st.Phase() != PhaseOccupied {
		t.Errorf("phase: got %s, want occupied", st.Phase())
	}
}

func TestCancel_DiscardsPartialProgressAndReleasesLock(t *testing.T) {
	// GIVEN a job half way through
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	item := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	now := 0.0
	assert.NoError(t, st.PlaceItem("A", item))
	assert.NoError(t, st.StartProcessing("A", now))
	now += 1.0
	st.Tick(now, 1.0)
	assert.Equal(t, 0.5, st.JobCell().Get().Progress)

	// WHEN the actor cancels
	assert.NoError(t, st.Cancel("A"))

	// THEN no partial transform was applied and the lock is free
	assert.Equal(t, PhaseCancelled, st.Phase())
	assert.Zero(t, st.JobCell().Get().Progress)
	assert.False(t, item.State().IsCut)
	assert.Zero(t, item.State().CuttingProgress)
	assert.False(t, st.Lock().State().Locked)

	// AND the item can be taken back untransformed, or processing restarted
	assert.NoError(t, st.StartProcessing("A", now))
	assert.Equal(t, PhaseProcessing, st.Phase())
}

func TestCancel_ByNonHolderRejected(t *testing.T) {
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	item := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	assert.NoError(t, st.PlaceItem("A", item))
	assert.NoError(t, st.StartProcessing("A", 0.0))

	err := st.Cancel("B")

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, PhaseProcessing, st.Phase())
}

func TestTakeItem_WhileProcessingRejected(t *testing.T) {
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	item := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	assert.NoError(t, st.PlaceItem("A", item))
	assert.NoError(t, st.StartProcessing("A", 0.0))

	_, err := st.TakeItem("A")

	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestPlaceItem_WhileOccupiedRejected(t *testing.T) {
	c := testCatalog(t)
	st := NewCutter("board_1", RoleAuthority, 2.0, 5.0)
	first := newTestItem(t, 1, typeFromCatalog(t, c, "tomato"))
	second := newTestItem(t, 2, typeFromCatalog(t, c, "tomato"))
	assert.NoError(t, st.PlaceItem("A", first))

	err := st.PlaceItem("A", second)

	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, first.ID, st.Item().ID)
}
