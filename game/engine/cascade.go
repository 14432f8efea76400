package engine

// resolveCascade clears cells, applies gravity and refill, and repeats while
// the refilled board holds matches. origins are the two swapped cells in
// priority order and are only passed on the first level of a swap-originated
// chain. It returns
// the deepest chain level reached and the score added by all levels.
func (e *GameEngine) resolveCascade(clear MatchSet, origins []Position, special bool) (int, float64) {
	st := e.state
	depth := 1
	var total float64

	for {
		size := clear.Len()
		if size >= BombSpawnThreshold {
			if origins != nil {
				for _, o := range origins {
					if clear.Has(o) {
						// the origin survives as a bomb instead of being cleared
						st.Board.Set(o, BombTile())
						clear.Remove(o)
						e.emit(Event{Type: EventBombSpawned, Cells: []Position{o}, Depth: depth})
						break
					}
				}
			} else if !special {
				st.PendingBomb = true
			}
		}

		cleared := clear.Positions()
		levelScore := float64(size) * Multiplier(st.Difficulty, depth)
		st.Score += levelScore
		total += levelScore
		e.emit(Event{
			Type:       EventMatched,
			Cells:      cleared,
			Anchor:     anchorOf(cleared),
			ScoreDelta: levelScore,
			Depth:      depth,
		})

		for _, p := range cleared {
			st.Board.Set(p, Tile{})
		}
		e.unsealAround(cleared)

		st.Board.Compact()
		e.emit(Event{Type: EventDropped, Depth: depth})
		e.emit(Event{Type: EventRefilled, Cells: e.refill(), Depth: depth})

		next := DetectMatches(st.Board)
		if next.Len() == 0 {
			if st.SealedMode && len(cleared) > 0 {
				e.sealRandom()
			}
			return depth, total
		}

		depth++
		e.logger.Debug().Int("depth", depth).Int("cells", next.Len()).Msg("cascade extended")
		e.emit(Event{Type: EventCascadeExtended, Depth: depth})
		clear, origins = next, nil
	}
}

// unsealAround turns every Sealed tile orthogonally adjacent to a cleared
// cell into a Normal tile of a fresh random color
func (e *GameEngine) unsealAround(cleared []Position) {
	board := e.state.Board
	seen := make(MatchSet)
	for _, p := range cleared {
		for _, n := range board.Neighbors(p) {
			if board.At(n).Kind == Sealed && !seen.Has(n) {
				board.Set(n, NormalTile(randomColor(e.rng, e.state.PaletteSize)))
				seen.Add(n)
			}
		}
	}
	if seen.Len() > 0 {
		e.emit(Event{Type: EventUnsealed, Cells: seen.Positions()})
	}
}

// refill places a random Normal tile in every empty cell
func (e *GameEngine) refill() []Position {
	board := e.state.Board
	empty := board.EmptyCells()
	for _, p := range empty {
		board.Set(p, NormalTile(randomColor(e.rng, e.state.PaletteSize)))
	}
	return empty
}

// sealRandom converts two distinct random Normal tiles to Sealed
func (e *GameEngine) sealRandom() {
	picked := pickPositions(e.rng, e.state.Board.CellsOfKind(Normal), SealedPerCascade)
	for _, p := range picked {
		e.state.Board.Set(p, SealedTile())
	}
	if len(picked) > 0 {
		e.emit(Event{Type: EventSealed, Cells: picked})
	}
}

// spawnChainRewards runs after a whole cascade: a chain of depth five or
// more places a Rainbow, and a pending bomb spawn places a Bomb, each on a
// random Normal cell.
func (e *GameEngine) spawnChainRewards(depth int) {
	st := e.state
	if depth >= RainbowChainDepth {
		if p, ok := e.convertRandomNormal(RainbowTile()); ok {
			e.logger.Debug().Int("depth", depth).Msg("rainbow spawned")
			e.emit(Event{Type: EventRainbowSpawned, Cells: []Position{p}, Depth: depth})
		}
	}
	if st.PendingBomb {
		st.PendingBomb = false
		if p, ok := e.convertRandomNormal(BombTile()); ok {
			e.logger.Debug().Msg("pending bomb spawned")
			e.emit(Event{Type: EventBombSpawned, Cells: []Position{p}})
		}
	}
}

func (e *GameEngine) convertRandomNormal(t Tile) (Position, bool) {
	picked := pickPositions(e.rng, e.state.Board.CellsOfKind(Normal), 1)
	if len(picked) == 0 {
		return Position{}, false
	}
	e.state.Board.Set(picked[0], t)
	return picked[0], true
}
