package kitchen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DrainReturnsSubmissionOrder(t *testing.T) {
	d := NewDispatcher(8)
	d.Submit(Request{Kind: RequestDispense, ActorID: "A", Station: "crate_tomato"})
	d.Submit(Request{Kind: RequestPlaceItem, ActorID: "A", Station: "board_1", ItemID: 1})
	d.Submit(Request{Kind: RequestStart, ActorID: "A", Station: "board_1"})

	got := d.Drain()

	assert.Len(t, got, 3)
	assert.Equal(t, RequestDispense, got[0].Kind)
	assert.Equal(t, RequestPlaceItem, got[1].Kind)
	assert.Equal(t, RequestStart, got[2].Kind)

	assert.Empty(t, d.Drain(), "second drain must be empty")
}

func TestDispatcher_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	d := NewDispatcher(2)
	d.Submit(Request{Kind: RequestStart, ActorID: "A"})
	d.Submit(Request{Kind: RequestStart, ActorID: "B"})
	d.Submit(Request{Kind: RequestStart, ActorID: "C"}) // dropped

	got := d.Drain()

	assert.Len(t, got, 2)
	assert.Equal(t, ActorID("A"), got[0].ActorID)
	assert.Equal(t, ActorID("B"), got[1].ActorID)
}

func TestFailureReason_ClassifiesWrappedErrors(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("claimed actor mismatch: %w", ErrAuthorityViolation), "authority_violation"},
		{fmt.Errorf("station busy: %w", ErrUnavailable), "unavailable"},
		{fmt.Errorf("no such item: %w", ErrNotFound), "not_found"},
		{fmt.Errorf("wrong phase: %w", ErrInvalidOperation), "invalid_operation"},
		{errors.New("disk on fire"), "error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, failureReason(tc.err))
	}
}
