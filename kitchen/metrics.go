// Tracks match-wide aggregate statistics for final reporting.

package kitchen

import "fmt"

// Metrics aggregates statistics about one match for final reporting.
type Metrics struct {
	OrdersCreated   int
	OrdersCompleted int
	OrdersExpired   int

	DishesByQuality map[DishQuality]int
	TotalPoints     int

	ItemsSpawned   int
	ItemsDiscarded int
	ItemsBurned    int

	RequestsApplied  int
	RequestsRejected int
}

// NewMetrics creates an empty metrics aggregate.
func NewMetrics() *Metrics {
	return &Metrics{DishesByQuality: make(map[DishQuality]int)}
}

// Print displays aggregated metrics at the end of the match.
func (m *Metrics) Print(duration float64, scores map[ActorID]int) {
	fmt.Println("=== Match Metrics ===")
	fmt.Printf("Match duration       : %.1fs\n", duration)
	fmt.Printf("Orders created       : %d\n", m.OrdersCreated)
	fmt.Printf("Orders completed     : %d\n", m.OrdersCompleted)
	fmt.Printf("Orders expired       : %d\n", m.OrdersExpired)
	fmt.Printf("Total points         : %d\n", m.TotalPoints)
	for _, q := range []DishQuality{QualityPerfect, QualityGood, QualityAcceptable} {
		if n := m.DishesByQuality[q]; n > 0 {
			fmt.Printf("Dishes %-14s: %d\n", q, n)
		}
	}
	fmt.Printf("Items spawned        : %d\n", m.ItemsSpawned)
	fmt.Printf("Items discarded      : %d\n", m.ItemsDiscarded)
	fmt.Printf("Items burned         : %d\n", m.ItemsBurned)
	fmt.Printf("Requests applied     : %d\n", m.RequestsApplied)
	fmt.Printf("Requests rejected    : %d\n", m.RequestsRejected)
	for actor, total := range scores {
		fmt.Printf("Score %-15s: %d\n", actor, total)
	}
}
