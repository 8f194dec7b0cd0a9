package game

// Status classifies a state. The values are mutually exclusive and
// exhaustive: every state maps to exactly one.
type Status int

const (
	// Illegal marks overlapping pieces or an impossible check arrangement.
	Illegal Status = iota
	// Continue means the game goes on and the side to move is not in check.
	Continue
	// Check means the defender king is attacked but has legal moves.
	Check
	// Checkmate means the defender is to move, has no legal moves, and its
	// king is attacked. The attacker wins.
	Checkmate
	// Stalemate means the defender is to move, has no legal moves, and its
	// king is not attacked. Draw.
	Stalemate
	// InsufficientMaterial means the defender king can capture the rook, so
	// the endgame can no longer be won. Draw.
	InsufficientMaterial
	// NoMovesLeft means the attacker is to move with no legal moves. Should
	// not occur under normal play; kept as a non-fatal terminal anomaly.
	NoMovesLeft
	// MaxTurnsReached means the move budget ran out. Draw.
	MaxTurnsReached
)

func (s Status) String() string {
	switch s {
	case Illegal:
		return "illegal"
	case Continue:
		return "continue"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case NoMovesLeft:
		return "no moves left"
	case MaxTurnsReached:
		return "maximum turns reached"
	default:
		return "unknown"
	}
}

// Ongoing reports whether play continues from a state with this status.
func (s Status) Ongoing() bool {
	return s == Continue || s == Check
}
