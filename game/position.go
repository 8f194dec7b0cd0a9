package game

// Position is an immutable (file, rank) square on the 8x8 board. Files and
// ranks are numbered 1 through 8.
type Position struct {
	File int
	Rank int
}

// ValidCoords reports whether both coordinates fall on the board.
func ValidCoords(file, rank int) bool {
	return file >= 1 && file <= 8 && rank >= 1 && rank <= 8
}

// Valid reports whether the position falls on the board.
func (p Position) Valid() bool {
	return ValidCoords(p.File, p.Rank)
}

// centerManhattan holds each square's Manhattan distance to the nearest of
// the four center squares, indexed [8-rank][file-1].
var centerManhattan = [8][8]int{
	{6, 5, 4, 3, 3, 4, 5, 6},
	{5, 4, 3, 2, 2, 3, 4, 5},
	{4, 3, 2, 1, 1, 2, 3, 4},
	{3, 2, 1, 0, 0, 1, 2, 3},
	{3, 2, 1, 0, 0, 1, 2, 3},
	{4, 3, 2, 1, 1, 2, 3, 4},
	{5, 4, 3, 2, 2, 3, 4, 5},
	{6, 5, 4, 3, 3, 4, 5, 6},
}

// CenterManhattanDistance returns the Manhattan distance from p to the
// nearest of the four center squares.
func CenterManhattanDistance(p Position) int {
	return centerManhattan[8-p.Rank][p.File-1]
}

// ManhattanDistance returns the sum of the file and rank distances between
// two positions.
func ManhattanDistance(a, b Position) int {
	return abs(a.File-b.File) + abs(a.Rank-b.Rank)
}

// ChebyshevDistance returns the larger of the file and rank distances
// between two positions.
func ChebyshevDistance(a, b Position) int {
	return max(abs(a.File-b.File), abs(a.Rank-b.Rank))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
