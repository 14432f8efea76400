package engine

// EventType names an observable step of a resolution
type EventType string

const (
	EventSwapped          EventType = "swapped"
	EventSwapReverted     EventType = "swap_reverted"
	EventSpecialTriggered EventType = "special_triggered"
	EventBonus            EventType = "bonus"
	EventMatched          EventType = "matched"
	EventUnsealed         EventType = "unsealed"
	EventDropped          EventType = "dropped"
	EventRefilled         EventType = "refilled"
	EventCascadeExtended  EventType = "cascade_extended"
	EventBombSpawned      EventType = "bomb_spawned"
	EventRainbowSpawned   EventType = "rainbow_spawned"
	EventSealed           EventType = "sealed"
	EventGameOver         EventType = "game_over"
)

// SpecialKind identifies which special trigger a swap dispatched to
type SpecialKind string

const (
	SpecialNone           SpecialKind = ""
	SpecialBomb           SpecialKind = "bomb"
	SpecialRainbow        SpecialKind = "rainbow"
	SpecialBombBomb       SpecialKind = "bomb_bomb"
	SpecialRainbowRainbow SpecialKind = "rainbow_rainbow"
	SpecialBombRainbow    SpecialKind = "bomb_rainbow"
)

// Event is emitted, in order, while a swap resolves. Presentation layers use
// them as animation and audio cues.
type Event struct {
	Type       EventType   `json:"type"`
	Cells      []Position  `json:"cells,omitempty"`
	Anchor     *Position   `json:"anchor,omitempty"`
	ScoreDelta float64     `json:"score_delta,omitempty"`
	Depth      int         `json:"depth,omitempty"`
	Special    SpecialKind `json:"special,omitempty"`
	FinalScore float64     `json:"final_score,omitempty"`
}

// Listener receives engine events synchronously
type Listener func(Event)

// Outcome summarises one accepted swap request
type Outcome struct {
	Accepted      bool        `json:"accepted"`
	NullMove      bool        `json:"null_move"`
	ChainDepth    int         `json:"chain_depth"`
	ScoreDelta    float64     `json:"score_delta"`
	SpecialEffect bool        `json:"special_effect"`
	Special       SpecialKind `json:"special,omitempty"`
	GameOver      bool        `json:"game_over"`
	Events        []Event     `json:"events"`
}

// emit records e on the in-flight outcome and fans it out to listeners
func (e *GameEngine) emit(ev Event) {
	if e.outcome != nil {
		e.outcome.Events = append(e.outcome.Events, ev)
	}
	for _, l := range e.listeners {
		l(ev)
	}
}

func anchorOf(cells []Position) *Position {
	if len(cells) == 0 {
		return nil
	}
	p := cells[0]
	return &p
}
