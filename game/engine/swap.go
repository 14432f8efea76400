package engine

import "fmt"

// RequestSwap validates and fully resolves one player swap, including every
// cascade level, before returning. A swap of two Normal tiles that forms no
// match is reverted and costs nothing.
func (e *GameEngine) RequestSwap(a, b Position) (*Outcome, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrEngineBusy
	}
	defer e.busy.Store(false)

	if e.state.GameOver {
		return nil, ErrGameOver
	}
	if err := e.validateSwap(a, b); err != nil {
		return nil, err
	}

	out := e.resolveSwap(a, b)
	e.recordSwap(a, b, out)
	return out, nil
}

func (e *GameEngine) validateSwap(a, b Position) error {
	board := e.state.Board
	if !board.InBounds(a) || !board.InBounds(b) {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) out of bounds", ErrInvalidSwap, a.Row, a.Col, b.Row, b.Col)
	}
	if !IsAdjacent(a, b) {
		return fmt.Errorf("%w: (%d,%d) and (%d,%d) are not adjacent", ErrInvalidSwap, a.Row, a.Col, b.Row, b.Col)
	}
	if board.At(a).IsEmpty() || board.At(b).IsEmpty() {
		return fmt.Errorf("%w: both cells must hold a tile", ErrInvalidSwap)
	}
	return nil
}

func (e *GameEngine) resolveSwap(a, b Position) *Outcome {
	out := &Outcome{Events: []Event{}}
	e.outcome = out
	defer func() { e.outcome = nil }()

	st := e.state
	st.Phase = PhaseSwapping
	st.Board.Swap(a, b)
	e.emit(Event{Type: EventSwapped, Cells: []Position{a, b}})

	var depth int
	var delta float64
	if st.Board.At(a).IsSpecial() || st.Board.At(b).IsSpecial() {
		st.ClicksRemaining--
		st.Phase = PhaseResolving
		out.SpecialEffect = true
		out.Special, depth, delta = e.triggerSpecial(a, b)
	} else {
		matches := DetectMatches(st.Board)
		if matches.Len() == 0 {
			st.Board.Swap(a, b)
			e.emit(Event{Type: EventSwapReverted, Cells: []Position{a, b}})
			st.Phase = PhaseIdle
			out.NullMove = true
			return out
		}
		st.ClicksRemaining--
		st.Phase = PhaseResolving
		// the tile that started at a now sits at b and is checked first
		depth, delta = e.resolveCascade(matches, []Position{b, a}, false)
	}

	out.Accepted = true
	e.spawnChainRewards(depth)
	out.ChainDepth = depth
	out.ScoreDelta = delta
	if depth > st.MaxChain {
		st.MaxChain = depth
	}

	if st.ClicksRemaining <= 0 {
		st.ClicksRemaining = 0
		st.GameOver = true
		st.Phase = PhaseGameOver
		out.GameOver = true
		e.logger.Debug().Float64("score", st.Score).Int("max_chain", st.MaxChain).Msg("game over")
		e.emit(Event{Type: EventGameOver, FinalScore: st.Score})
	} else {
		st.Phase = PhaseIdle
	}
	return out
}

// triggerSpecial works out the clear-set for a swap involving a Bomb or
// Rainbow and hands it to the cascade with the special-effect flag set.
// The tile that started at a now sits at b and counts as the first tile.
func (e *GameEngine) triggerSpecial(a, b Position) (SpecialKind, int, float64) {
	board := e.state.Board
	first, second := b, a
	t1, t2 := board.At(first), board.At(second)

	var kind SpecialKind
	var origin Position
	var color Color
	switch {
	case t1.Kind == Bomb && t2.Kind == Bomb:
		kind, origin = SpecialBombBomb, first
	case t1.Kind == Rainbow && t2.Kind == Rainbow:
		kind, origin = SpecialRainbowRainbow, first
	case t1.IsSpecial() && t2.IsSpecial():
		kind, origin = SpecialBombRainbow, first
	case t1.Kind == Bomb:
		kind, origin = SpecialBomb, first
	case t2.Kind == Bomb:
		kind, origin = SpecialBomb, second
	case t1.Kind == Rainbow:
		kind, origin, color = SpecialRainbow, first, t2.Color
	default:
		kind, origin, color = SpecialRainbow, second, t1.Color
	}

	var clear MatchSet
	var bonus float64
	switch kind {
	case SpecialBomb:
		clear = NewMatchSet(board.Area(origin)...)
	case SpecialRainbow:
		clear = NewMatchSet(origin)
		for _, p := range board.CellsOfColor(color) {
			clear.Add(p)
		}
	default:
		clear = NewMatchSet(board.OccupiedCells()...)
		bonus = WipeBonus
	}

	anchor := origin
	e.emit(Event{Type: EventSpecialTriggered, Special: kind, Cells: clear.Positions(), Anchor: &anchor})
	if bonus > 0 {
		e.state.Score += bonus
		e.emit(Event{Type: EventBonus, Special: kind, Anchor: &anchor, ScoreDelta: bonus})
	}
	e.logger.Debug().Str("special", string(kind)).Int("cells", clear.Len()).Msg("special triggered")

	depth, delta := e.resolveCascade(clear, nil, true)
	return kind, depth, delta + bonus
}
