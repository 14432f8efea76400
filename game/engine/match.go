package engine

import "sort"

// MatchSet is a set of board coordinates found in one detection pass.
// Membership is by position, never by tile identity.
type MatchSet map[Position]struct{}

// NewMatchSet builds a set from the given positions
func NewMatchSet(positions ...Position) MatchSet {
	m := make(MatchSet, len(positions))
	for _, p := range positions {
		m.Add(p)
	}
	return m
}

// Add inserts p
func (m MatchSet) Add(p Position) { m[p] = struct{}{} }

// Remove deletes p
func (m MatchSet) Remove(p Position) { delete(m, p) }

// Has reports membership of p
func (m MatchSet) Has(p Position) bool {
	_, ok := m[p]
	return ok
}

// Len returns the number of positions
func (m MatchSet) Len() int { return len(m) }

// Positions returns the members in row-major order
func (m MatchSet) Positions() []Position {
	out := make([]Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// DetectMatches scans every row and column for runs of three or more
// consecutive Normal tiles of the same color and returns the union of all
// matched cells. Any non-Normal or empty cell ends a run.
func DetectMatches(b *Board) MatchSet {
	matches := make(MatchSet)
	for r := 0; r < b.Size; r++ {
		scanLine(b, matches, func(i int) Position { return Position{Row: r, Col: i} })
	}
	for c := 0; c < b.Size; c++ {
		scanLine(b, matches, func(i int) Position { return Position{Row: i, Col: c} })
	}
	return matches
}

// scanLine walks one row or column, where at maps an index along the line to a cell
func scanLine(b *Board, matches MatchSet, at func(int) Position) {
	start := 0
	for i := 1; i <= b.Size; i++ {
		if i < b.Size && sameColorRun(b.At(at(start)), b.At(at(i))) {
			continue
		}
		if i-start >= 3 && b.At(at(start)).IsNormal() {
			for k := start; k < i; k++ {
				matches.Add(at(k))
			}
		}
		start = i
	}
}

func sameColorRun(a, b Tile) bool {
	return a.IsNormal() && b.IsNormal() && a.Color == b.Color
}

// HasMatch reports whether the board holds any run of three
func HasMatch(b *Board) bool {
	return DetectMatches(b).Len() > 0
}
