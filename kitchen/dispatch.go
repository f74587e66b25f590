// Remote request dispatch. Actors never mutate state directly: every
// interaction is a typed request tagged with the sender's connection,
// buffered in the dispatcher, and applied by the authority at the next tick
// boundary. Per-connection submission order is preserved; ordering across
// connections is whatever the buffer saw.

package kitchen

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// RequestKind names an operation an actor can request.
type RequestKind string

const (
	RequestPlaceItem    RequestKind = "place_item"    // held item onto a processing station
	RequestTakeItem     RequestKind = "take_item"     // item off a processing station
	RequestStart        RequestKind = "start"         // start a processing job
	RequestCancel       RequestKind = "cancel"        // cancel a processing job
	RequestDispense     RequestKind = "dispense"      // spawn from a crate
	RequestPlateAdd     RequestKind = "plate_add"     // held item onto a plate
	RequestPlateRemove  RequestKind = "plate_remove"  // last item back off a plate
	RequestDiscardItem  RequestKind = "discard_item"  // held item into the trash
	RequestServe        RequestKind = "serve"         // plate contents to the pass
)

// Request is one buffered remote mutation request.
type Request struct {
	Kind    RequestKind
	ActorID ActorID // claimed actor
	Sender  ConnID  // stamped by the transport, not the client
	Station StationID
	ItemID  ItemID    // item argument, when the kind takes one
	PlateID StationID // plate argument for RequestServe
}

// Dispatcher buffers remote requests until the authority drains them at a
// tick boundary.
type Dispatcher struct {
	inbox chan Request
}

// NewDispatcher creates a dispatcher with the given buffer capacity.
func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{inbox: make(chan Request, buffer)}
}

// Submit enqueues a request from a connection. A full buffer drops the
// request with a warning; clients retry, they never block the authority.
func (d *Dispatcher) Submit(req Request) {
	select {
	case d.inbox <- req:
	default:
		logrus.Warnf("dispatch: inbox full, dropping %s from %s", req.Kind, req.ActorID)
	}
}

// Drain returns all requests buffered so far without blocking.
func (d *Dispatcher) Drain() []Request {
	var out []Request
	for {
		select {
		case req := <-d.inbox:
			out = append(out, req)
		default:
			return out
		}
	}
}

// failureReason classifies an operation error for tracing and logs.
func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthorityViolation):
		return "authority_violation"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidOperation):
		return "invalid_operation"
	default:
		return "error"
	}
}
