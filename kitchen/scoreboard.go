package kitchen

import (
	"github.com/sirupsen/logrus"
)

// ScoreSink receives points awarded by the serving station. Implemented
// in-memory here; a networked match forwards the same calls.
type ScoreSink interface {
	AddScore(actor ActorID, amount int, reason string)
}

// ScoreChange is the replicated record of one award.
type ScoreChange struct {
	Actor  ActorID
	Delta  int
	Total  int
	Reason string
}

// Scoreboard is the in-memory score sink with a replicated change feed.
type Scoreboard struct {
	role    Role
	totals  map[ActorID]int
	changes *Cell[ScoreChange]
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard(role Role) *Scoreboard {
	return &Scoreboard{
		role:    role,
		totals:  make(map[ActorID]int),
		changes: NewCell("scoreboard", ScoreChange{}),
	}
}

// AddScore awards points to an actor. Totals never go negative.
func (sb *Scoreboard) AddScore(actor ActorID, amount int, reason string) {
	total := sb.totals[actor] + amount
	if total < 0 {
		total = 0
	}
	sb.totals[actor] = total
	logrus.Infof("score: %s +%d (%s), total %d", actor, amount, reason, total)
	_ = sb.changes.Set(sb.role, ScoreChange{Actor: actor, Delta: amount, Total: total, Reason: reason})
}

// Total returns an actor's current score.
func (sb *Scoreboard) Total(actor ActorID) int {
	return sb.totals[actor]
}

// Totals returns a copy of all actor scores.
func (sb *Scoreboard) Totals() map[ActorID]int {
	out := make(map[ActorID]int, len(sb.totals))
	for k, v := range sb.totals {
		out[k] = v
	}
	return out
}

// ChangesCell exposes the replicated award feed for observers.
func (sb *Scoreboard) ChangesCell() *Cell[ScoreChange] { return sb.changes }

// ConnID identifies a transport connection for sender validation.
type ConnID string

// ActorDirectory resolves actor ids to connections. The authority uses it
// to verify that a request's claimed actor matches its sender.
type ActorDirectory struct {
	conns map[ActorID]ConnID
}

// NewActorDirectory creates an empty directory.
func NewActorDirectory() *ActorDirectory {
	return &ActorDirectory{conns: make(map[ActorID]ConnID)}
}

// Register binds an actor to a connection, replacing any previous binding.
func (d *ActorDirectory) Register(actor ActorID, conn ConnID) {
	d.conns[actor] = conn
}

// Remove drops an actor's binding.
func (d *ActorDirectory) Remove(actor ActorID) {
	delete(d.conns, actor)
}

// Conn returns the connection bound to an actor.
func (d *ActorDirectory) Conn(actor ActorID) (ConnID, bool) {
	c, ok := d.conns[actor]
	return c, ok
}

// Actors returns all registered actor ids.
func (d *ActorDirectory) Actors() []ActorID {
	out := make([]ActorID, 0, len(d.conns))
	for a := range d.conns {
		out = append(out, a)
	}
	return out
}
