// Package kitchen provides the authoritative simulation kernel for a
// real-time multi-party cooking match.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - item.go: per-item preparation state machine (cutting/cooking tracks, one-way latches)
//   - station.go: the timed-processing engine and its lock discipline
//   - world.go: the single-writer tick loop, entity table, and request application
//
// # Architecture
//
// One goroutine — the authority — owns every mutation of item, lock, job,
// and order state. Remote actors submit typed requests (dispatch.go) that
// buffer until the next tick boundary; the authority validates sender
// identity against the actor directory, applies the operation, and
// broadcasts the resulting change through replication cells
// (replication.go). Observers, including the original requester, learn of
// changes only through those cells.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Station: the surface the world needs from any archetype (cutter, cooker, assembler, dispenser, discard, serving)
//   - DishValidator: validation/quality/score strategy, selected by config name at match start
//   - ScoreSink: score award target, in-memory here, networked elsewhere
//
// Sub-package kitchen/trace records interaction and order decisions for
// post-match analysis.
package kitchen
