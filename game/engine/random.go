package engine

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource is the engine's only source of randomness. Tile colors and
// random cell picks all go through it so tests can substitute a scripted one.
type RandomSource interface {
	// Intn returns a uniform value in [0, n); n > 0.
	Intn(n int) int
}

// NewRandomSource returns a seeded source; seed 0 seeds from the clock
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// randomColor picks uniformly from the first paletteSize colors
func randomColor(rng RandomSource, paletteSize int) Color {
	return Palette[rng.Intn(paletteSize)]
}

// pickPositions draws up to n distinct positions from candidates without replacement
func pickPositions(rng RandomSource, candidates []Position, n int) []Position {
	pool := append([]Position(nil), candidates...)
	var picked []Position
	for len(picked) < n && len(pool) > 0 {
		i := rng.Intn(len(pool))
		picked = append(picked, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return picked
}
