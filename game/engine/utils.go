package engine

import "math"

// Multiplier returns the score multiplier for a chain depth (1-based).
// Normal grows linearly by 0.2 per link. Hard follows the same line up to
// depth 2 and then adds 0.6 per link.
func Multiplier(difficulty Difficulty, depth int) float64 {
	if depth < 1 {
		depth = 1
	}
	if difficulty == DifficultyHard && depth > 2 {
		return 1.2 + 0.6*float64(depth-2)
	}
	return 1 + 0.2*float64(depth-1)
}

// DisplayScore rounds an exact score to the nearest integer for display
func DisplayScore(score float64) int {
	return int(math.Round(score))
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// IsAdjacent reports whether two positions share an edge
func IsAdjacent(a, b Position) bool {
	return ManhattanDistance(a, b) == 1
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
