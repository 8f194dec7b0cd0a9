package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// StateHash identifies a piece arrangement plus side to move.
type StateHash uint64

// AttackPair pairs the attacker king's and rook's candidate squares by
// index. When one sequence is shorter the missing entry is nil, preserving
// the 1:1 index correspondence used by legality filtering.
type AttackPair struct {
	King *Position
	Rook *Position
}

// GameState is an immutable node in the game tree: the full board (both
// kings plus the attacker's rook), the ply depth, the allowed depth, and a
// back-reference to its predecessor. Legal moves and status are derived at
// construction; attack sets are memoized lazily and written at most once,
// until Release retires the state from the live path.
type GameState struct {
	KingAttacker *King
	RookAttacker *Rook
	KingDefender *King
	Ply          int
	MaxPly       int
	Parent       *GameState

	legalMoves []Piece
	status     Status
	isLeaf     bool

	attackerAttacks []AttackPair
	defenderAttacks []Position

	// children caches successors by legal-move index. Append-only, so every
	// full traversal yields the same sequence.
	children []*GameState

	released bool
}

// NewGameState builds a root state. Piece owner mix-ups are programming
// errors and panic; overlapping positions yield status Illegal.
func NewGameState(kingAttacker *King, rookAttacker *Rook, kingDefender *King, maxPly int) *GameState {
	return newState(kingAttacker, rookAttacker, kingDefender, maxPly, 0, nil)
}

func newState(kingAttacker *King, rookAttacker *Rook, kingDefender *King, maxPly, ply int, parent *GameState) *GameState {
	if kingAttacker.Owner() != Attacker || rookAttacker.Owner() != Attacker || kingDefender.Owner() != Defender {
		panic("game state pieces assigned to the wrong sides")
	}

	s := &GameState{
		KingAttacker: kingAttacker,
		RookAttacker: rookAttacker,
		KingDefender: kingDefender,
		Ply:          ply,
		MaxPly:       maxPly,
		Parent:       parent,
	}
	s.legalMoves = s.generateLegalMoves()
	s.status = s.classify()
	// A state is a leaf when play cannot continue from it or the ply budget
	// is exhausted. Leaves expose no moves.
	if s.status.Ongoing() && s.MaxPly > s.Ply {
		s.isLeaf = false
	} else {
		s.legalMoves = nil
		s.isLeaf = true
	}
	return s
}

// CurrentPlayer returns the side to move: the attacker on even plies. This
// parity convention is assumed by status classification and both
// evaluators.
func (s *GameState) CurrentPlayer() Side {
	if s.Ply%2 == 0 {
		return Attacker
	}
	return Defender
}

// Status returns the state's classification.
func (s *GameState) Status() Status { return s.status }

// IsLeaf reports whether play stops at this state.
func (s *GameState) IsLeaf() bool { return s.isLeaf }

// LegalMoves returns the candidate moves for the side to move, each
// represented as the moved piece at its destination. Empty for leaves. The
// slice is shared; callers must not mutate it.
func (s *GameState) LegalMoves() []Piece { return s.legalMoves }

// AttackerAttackingSquares returns the paired attack sets of the attacker's
// king and rook, the rook's line cut off beyond its own king. Memoized.
func (s *GameState) AttackerAttackingSquares() []AttackPair {
	if s.attackerAttacks == nil {
		s.attackerAttacks = zipLongest(s.KingAttacker.AttackingPositions(), s.filteredRookAttacks())
	}
	return s.attackerAttacks
}

// DefenderAttackingSquares returns the defender king's attack set,
// unfiltered. Memoized.
func (s *GameState) DefenderAttackingSquares() []Position {
	if s.defenderAttacks == nil {
		s.defenderAttacks = s.KingDefender.AttackingPositions()
	}
	return s.defenderAttacks
}

// filteredRookAttacks drops rook squares beyond the attacker's own king when
// the two share a file or rank: the king screens the rest of that line.
func (s *GameState) filteredRookAttacks() []Position {
	kingPos := s.KingAttacker.Pos()
	rookPos := s.RookAttacker.Pos()
	attacks := s.RookAttacker.AttackingPositions()

	var keep func(Position) bool
	switch {
	case kingPos.File == rookPos.File:
		if kingPos.Rank > rookPos.Rank {
			keep = func(p Position) bool { return p.Rank < kingPos.Rank }
		} else {
			keep = func(p Position) bool { return p.Rank > kingPos.Rank }
		}
	case kingPos.Rank == rookPos.Rank:
		if kingPos.File > rookPos.File {
			keep = func(p Position) bool { return p.File < kingPos.File }
		} else {
			keep = func(p Position) bool { return p.File > kingPos.File }
		}
	default:
		return attacks
	}

	filtered := make([]Position, 0, len(attacks))
	for _, p := range attacks {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PieceUnderAttack reports whether the opponent's attack squares cover the
// piece's square.
func (s *GameState) PieceUnderAttack(piece Piece) bool {
	if piece.Owner() == Attacker {
		for _, p := range s.DefenderAttackingSquares() {
			if p == piece.Pos() {
				return true
			}
		}
		return false
	}
	for _, pair := range s.AttackerAttackingSquares() {
		if pair.King != nil && *pair.King == piece.Pos() {
			return true
		}
		if pair.Rook != nil && *pair.Rook == piece.Pos() {
			return true
		}
	}
	return false
}

func (s *GameState) generateLegalMoves() []Piece {
	if s.CurrentPlayer() == Attacker {
		return s.attackerMoves()
	}
	return s.defenderMoves()
}

// attackerMoves walks the paired candidate lists. A king candidate is legal
// when it is outside the defender's attack set and passes the king-safety
// filter; a rook candidate only needs to avoid the defender's attack set.
func (s *GameState) attackerMoves() []Piece {
	defenderSet := positionSet(s.DefenderAttackingSquares())
	unsafe := s.attackerKingUnsafe(defenderSet)

	var moves []Piece
	for _, pair := range s.AttackerAttackingSquares() {
		if pair.King != nil && !defenderSet[*pair.King] && !unsafe[*pair.King] {
			moves = append(moves, s.KingAttacker.Move(*pair.King))
		}
		if pair.Rook != nil && !defenderSet[*pair.Rook] {
			moves = append(moves, s.RookAttacker.Move(*pair.Rook))
		}
	}
	return moves
}

// attackerKingUnsafe is the king-safety filter for the attacker king: the
// intersection of its own candidate squares with the defender king's attack
// set, plus the square its own rook occupies.
func (s *GameState) attackerKingUnsafe(defenderSet map[Position]bool) map[Position]bool {
	unsafe := make(map[Position]bool)
	for _, p := range s.KingAttacker.AttackingPositions() {
		if defenderSet[p] {
			unsafe[p] = true
		}
	}
	unsafe[s.RookAttacker.Pos()] = true
	return unsafe
}

// defenderMoves filters the defender king's candidates through its
// king-safety filter: any candidate covered by the attacker's king or by
// the rook's (king-screened) line is out.
func (s *GameState) defenderMoves() []Piece {
	safe := s.defenderSafeSquares()
	moves := make([]Piece, 0, len(safe))
	for _, candidate := range safe {
		moves = append(moves, s.KingDefender.Move(candidate))
	}
	if len(moves) == 0 {
		return nil
	}
	return moves
}

// defenderSafeSquares returns the defender king's candidates that survive
// its king-safety filter.
func (s *GameState) defenderSafeSquares() []Position {
	defenderSet := positionSet(s.DefenderAttackingSquares())

	unsafe := make(map[Position]bool)
	for _, pair := range s.AttackerAttackingSquares() {
		if pair.King != nil && defenderSet[*pair.King] {
			unsafe[*pair.King] = true
		}
		if pair.Rook != nil && defenderSet[*pair.Rook] {
			unsafe[*pair.Rook] = true
		}
	}

	var safe []Position
	for _, candidate := range s.DefenderAttackingSquares() {
		if !unsafe[candidate] {
			safe = append(safe, candidate)
		}
	}
	return safe
}

// defenderKingMobility counts the defender king's available squares: its
// safety-filtered candidates on the defender's turn, the raw attack set
// otherwise. Both evaluators weight this count.
func (s *GameState) defenderKingMobility() int {
	if s.CurrentPlayer() == Defender {
		return len(s.defenderSafeSquares())
	}
	return len(s.DefenderAttackingSquares())
}

// classify derives the status. The precedence order is fixed: overlap,
// no-legal-moves outcomes, capture/check conditions for the side to move,
// move budget, then continue.
func (s *GameState) classify() Status {
	kaPos := s.KingAttacker.Pos()
	raPos := s.RookAttacker.Pos()
	kdPos := s.KingDefender.Pos()
	if kaPos == raPos || kdPos == raPos || kaPos == kdPos {
		return Illegal
	}

	if len(s.legalMoves) == 0 {
		if s.CurrentPlayer() == Defender {
			if s.PieceUnderAttack(s.KingDefender) {
				return Checkmate
			}
			return Stalemate
		}
		return NoMovesLeft
	}

	if s.CurrentPlayer() == Defender {
		if s.PieceUnderAttack(s.RookAttacker) {
			return InsufficientMaterial
		}
		if s.PieceUnderAttack(s.KingAttacker) {
			return Illegal
		}
		if s.PieceUnderAttack(s.KingDefender) {
			return Check
		}
	} else if s.PieceUnderAttack(s.KingDefender) {
		// The attacker may not already be delivering check on its own turn.
		return Illegal
	}

	if s.Ply >= s.MaxPly {
		return MaxTurnsReached
	}
	return Continue
}

// ChildFromMove applies one legal move, producing the successor state with
// Parent set to s and Ply one greater.
func (s *GameState) ChildFromMove(move Piece) *GameState {
	if move.Owner() == Attacker {
		if rook, ok := move.(*Rook); ok {
			return newState(s.KingAttacker, rook, s.KingDefender, s.MaxPly, s.Ply+1, s)
		}
		return newState(move.(*King), s.RookAttacker, s.KingDefender, s.MaxPly, s.Ply+1, s)
	}
	return newState(s.KingAttacker, s.RookAttacker, move.(*King), s.MaxPly, s.Ply+1, s)
}

// SamePosition reports whether both states hold the identical piece-position
// triple. Used by repetition detection.
func (s *GameState) SamePosition(other *GameState) bool {
	return s.KingAttacker.Pos() == other.KingAttacker.Pos() &&
		s.RookAttacker.Pos() == other.RookAttacker.Pos() &&
		s.KingDefender.Pos() == other.KingDefender.Pos()
}

// Hash digests the piece positions and side to move.
func (s *GameState) Hash() StateHash {
	h := fnv.New64a()
	for _, p := range []Position{s.KingAttacker.Pos(), s.RookAttacker.Pos(), s.KingDefender.Pos()} {
		binary.Write(h, binary.LittleEndian, int64(p.File))
		binary.Write(h, binary.LittleEndian, int64(p.Rank))
	}
	binary.Write(h, binary.LittleEndian, int64(s.Ply%2))
	return StateHash(h.Sum64())
}

// Release invalidates the memoized data of a state leaving the live path,
// along with the attack memos of any piece the chosen successor did not
// carry over. The tree grows along the played line only; this keeps long
// games from pinning every explored branch.
func (s *GameState) Release(successor *GameState) {
	s.attackerAttacks = nil
	s.defenderAttacks = nil
	s.legalMoves = nil
	s.children = nil
	s.released = true
	if !successor.KingAttacker.EqualTo(s.KingAttacker) {
		s.KingAttacker.Release()
	}
	if !successor.RookAttacker.EqualTo(s.RookAttacker) {
		s.RookAttacker.Release()
	}
	if !successor.KingDefender.EqualTo(s.KingDefender) {
		s.KingDefender.Release()
	}
}

// Released reports whether the state has been retired from the live path.
func (s *GameState) Released() bool { return s.released }

func (s *GameState) String() string {
	return fmt.Sprintf("ply=%d %s(%d,%d) %s(%d,%d) %s(%d,%d)",
		s.Ply,
		s.KingAttacker, s.KingAttacker.Pos().File, s.KingAttacker.Pos().Rank,
		s.RookAttacker, s.RookAttacker.Pos().File, s.RookAttacker.Pos().Rank,
		s.KingDefender, s.KingDefender.Pos().File, s.KingDefender.Pos().Rank)
}

func positionSet(positions []Position) map[Position]bool {
	set := make(map[Position]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}

// zipLongest pairs two candidate lists by index, padding the shorter side
// with nil.
func zipLongest(kings, rooks []Position) []AttackPair {
	n := len(kings)
	if len(rooks) > n {
		n = len(rooks)
	}
	pairs := make([]AttackPair, n)
	for i := 0; i < n; i++ {
		if i < len(kings) {
			p := kings[i]
			pairs[i].King = &p
		}
		if i < len(rooks) {
			p := rooks[i]
			pairs[i].Rook = &p
		}
	}
	return pairs
}
