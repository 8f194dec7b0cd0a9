package game

// Evaluate scores a state from one side's perspective. depth is the
// distance from the search root, used to prefer near-term outcomes.
type Evaluate func(s *GameState, depth int) float64

// EvaluateAttacker scores a state for the side hunting checkmate. It drives
// the defender king toward the edge, closes the two kings together, rewards
// the rook boxing the defender in, and shrinks the defender's mobility.
// Terminal outcomes and detected repetitions carry dominating flat terms.
func EvaluateAttacker(s *GameState, depth int) float64 {
	kaPos := s.KingAttacker.Pos()
	raPos := s.RookAttacker.Pos()
	kdPos := s.KingDefender.Pos()

	var bonus, penalty float64

	mobility := s.defenderKingMobility()
	kdCenter := CenterManhattanDistance(kdPos)

	// Repeating lines make no progress toward mate.
	if s.CheckCycle(4, 8) {
		penalty += 1000
	}

	switch s.Status() {
	case Checkmate:
		bonus += 1000 / float64(depth+1)
	case Stalemate, InsufficientMaterial:
		penalty += 1000 / float64(depth+1)
	}

	if s.CurrentPlayer() == Defender {
		// The defender could capture an adjacent rook next move.
		if ChebyshevDistance(kdPos, raPos) == 1 {
			penalty += 1000
		}
		// Kings two apart confine the defender.
		if ChebyshevDistance(kdPos, kaPos) == 2 {
			bonus += 20
		}
	}

	// An asymmetric file/rank separation between rook and defender king
	// signals the king is boxed against one of the rook's lines. Inverted
	// and doubled when the attacker's own king screens the rook.
	df := abs(kdPos.File - raPos.File)
	dr := abs(kdPos.Rank - raPos.Rank)
	boxing := float64(max(df, dr))/float64(min(df, dr)+1) - 1
	if s.KingAttacker.Between(raPos, kdPos) {
		boxing = -2 * boxing
	}

	kingsApart := ManhattanDistance(kaPos, kdPos)

	return 9.7*float64(kdCenter) +
		1.6*float64(14-kingsApart) +
		boxing -
		10*float64(mobility)/float64(kdCenter+1) +
		bonus - penalty
}

// EvaluateDefender scores a state for the lone king. It favors a symmetric
// file/rank separation from the rook (harder to box in), staying central,
// and keeping squares to move to; being in check and losing outcomes are
// penalized, drawing outcomes rewarded. On the attacker's turn, attacker
// pieces crowding the defender king without resolution favor the defender.
func EvaluateDefender(s *GameState, depth int) float64 {
	kaPos := s.KingAttacker.Pos()
	raPos := s.RookAttacker.Pos()
	kdPos := s.KingDefender.Pos()

	var bonus, penalty float64

	switch s.Status() {
	case Checkmate:
		penalty += 1000 / float64(depth+1)
	case Stalemate, InsufficientMaterial:
		bonus += 1000 / float64(depth+1)
	}

	if s.PieceUnderAttack(s.KingDefender) {
		penalty += 500
	}

	if s.CurrentPlayer() == Attacker {
		if ChebyshevDistance(kdPos, raPos) == 1 {
			bonus += 250
		}
		if ChebyshevDistance(kdPos, kaPos) == 2 {
			bonus += 10
		}
	}

	mobility := s.defenderKingMobility()
	kdCenter := CenterManhattanDistance(kdPos)

	// Near-equal file and rank distances to the rook leave the king less
	// exposed to either of the rook's lines.
	axisDiff := abs(abs(kdPos.File-raPos.File) - abs(kdPos.Rank-raPos.Rank))

	return -9.3*float64(axisDiff) -
		5.7*float64(kdCenter) +
		10*float64(mobility)/float64(kdCenter+1) +
		bonus - penalty
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
