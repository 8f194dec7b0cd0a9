package game

// CheckCycle reports whether the recent position sequence has repeated: for
// some even window length l in [minLength, maxLength), the l most recent
// ancestors match the l before them exactly. Both bounds must be even (two
// plies per full move) and maxLength must exceed minLength. The attacker's
// heuristic uses this to penalize non-progress, and its search uses it to
// cut repeating lines off early.
func (s *GameState) CheckCycle(minLength, maxLength int) bool {
	if minLength%2 != 0 || maxLength%2 != 0 || maxLength <= minLength {
		panic("cycle window bounds must be even with maxLength > minLength")
	}
	if s.Ply < 4 {
		return false
	}

	// Most recent ancestor first.
	ancestors := make([]*GameState, 0, maxLength*2)
	for p := s.Parent; p != nil && len(ancestors) < maxLength*2; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	return hasRepetition(ancestors, minLength, maxLength)
}

// hasRepetition is the pure window comparison over an ancestor sequence
// ordered most recent first.
func hasRepetition(ancestors []*GameState, minLength, maxLength int) bool {
	if len(ancestors) < minLength*2 {
		return false
	}
	for l := minLength; l < maxLength; l += 2 {
		if 2*l > len(ancestors) {
			break
		}
		match := true
		for i := 0; i < l; i++ {
			if !ancestors[i].SamePosition(ancestors[l+i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
