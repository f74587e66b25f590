package trace

// Level controls the verbosity of match tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelDecisions captures station interaction outcomes and order
	// lifecycle events.
	LevelDecisions Level = "decisions"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:      true,
	LevelDecisions: true,
	"":             true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is recognized.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior.
type Config struct {
	Level Level
}

// InteractionRecord captures one station operation decision.
type InteractionRecord struct {
	Time     float64
	Actor    string
	Station  string
	Kind     string // request kind, e.g. "place_item"
	Accepted bool
	Reason   string // failure classification, empty when accepted
}

// OrderRecord captures one order lifecycle transition.
type OrderRecord struct {
	Time    float64
	OrderID int
	Recipe  string
	Outcome string // "created", "completed", "expired"
	Actor   string // completing actor, empty otherwise
	Points  int
}

// MatchTrace collects decision records during one match.
type MatchTrace struct {
	Config       Config
	Interactions []InteractionRecord
	Orders       []OrderRecord
}

// New creates a MatchTrace ready for recording.
func New(config Config) *MatchTrace {
	return &MatchTrace{
		Config:       config,
		Interactions: make([]InteractionRecord, 0),
		Orders:       make([]OrderRecord, 0),
	}
}

func (mt *MatchTrace) enabled() bool {
	return mt != nil && mt.Config.Level == LevelDecisions
}

// RecordInteraction appends a station decision record.
func (mt *MatchTrace) RecordInteraction(record InteractionRecord) {
	if !mt.enabled() {
		return
	}
	mt.Interactions = append(mt.Interactions, record)
}

// RecordOrder appends an order lifecycle record.
func (mt *MatchTrace) RecordOrder(record OrderRecord) {
	if !mt.enabled() {
		return
	}
	mt.Orders = append(mt.Orders, record)
}
