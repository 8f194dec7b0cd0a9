package game

// ChildIterator walks a state's successors in legal-move order. Children are
// computed on demand and cached on the parent, so restarting the iterator
// replays the same sequence without recomputation.
type ChildIterator struct {
	state *GameState
	next  int
}

// Children returns a fresh iterator over the state's successors.
func (s *GameState) Children() *ChildIterator {
	return &ChildIterator{state: s}
}

// Next returns the next successor, or false when the moves are exhausted.
func (it *ChildIterator) Next() (*GameState, bool) {
	moves := it.state.legalMoves
	if it.next >= len(moves) {
		return nil, false
	}
	if it.next < len(it.state.children) {
		child := it.state.children[it.next]
		it.next++
		return child, true
	}
	child := it.state.ChildFromMove(moves[it.next])
	it.state.children = append(it.state.children, child)
	it.next++
	return child, true
}

// Reset rewinds the iterator to the first child.
func (it *ChildIterator) Reset() { it.next = 0 }
