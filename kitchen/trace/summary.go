package trace

// Summary aggregates statistics from a MatchTrace.
type Summary struct {
	TotalInteractions  int
	AcceptedCount      int
	RejectedCount      int
	RejectionsByReason map[string]int

	OrdersCreated   int
	OrdersCompleted int
	OrdersExpired   int
	TotalPoints     int
	PointsByActor   map[string]int
}

// Summarize computes aggregate statistics from a MatchTrace. Safe for nil
// or empty traces (returns zero-value fields).
func Summarize(mt *MatchTrace) *Summary {
	summary := &Summary{
		RejectionsByReason: make(map[string]int),
		PointsByActor:      make(map[string]int),
	}
	if mt == nil {
		return summary
	}

	summary.TotalInteractions = len(mt.Interactions)
	for _, rec := range mt.Interactions {
		if rec.Accepted {
			summary.AcceptedCount++
		} else {
			summary.RejectedCount++
			summary.RejectionsByReason[rec.Reason]++
		}
	}

	for _, rec := range mt.Orders {
		switch rec.Outcome {
		case "created":
			summary.OrdersCreated++
		case "completed":
			summary.OrdersCompleted++
			summary.TotalPoints += rec.Points
			summary.PointsByActor[rec.Actor] += rec.Points
		case "expired":
			summary.OrdersExpired++
		}
	}

	return summary
}
