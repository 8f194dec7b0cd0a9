package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateAttacker(t *testing.T) {
	t.Run("checkmate dominates any heuristic score", func(t *testing.T) {
		mate := at(Position{File: 1, Rank: 3}, Position{File: 8, Rank: 1}, Position{File: 1, Rank: 1}, Defender)
		ongoing := at(Position{File: 6, Rank: 6}, Position{File: 1, Rank: 1}, Position{File: 8, Rank: 8}, Defender)
		require.Greater(t, EvaluateAttacker(mate, 0), EvaluateAttacker(ongoing, 0))
	})

	t.Run("nearer mates score higher", func(t *testing.T) {
		mate := at(Position{File: 1, Rank: 3}, Position{File: 8, Rank: 1}, Position{File: 1, Rank: 1}, Defender)
		require.Greater(t, EvaluateAttacker(mate, 0), EvaluateAttacker(mate, 2))
	})

	t.Run("stalemate is heavily penalized", func(t *testing.T) {
		stalemate := at(Position{File: 3, Rank: 3}, Position{File: 2, Rank: 2}, Position{File: 1, Rank: 1}, Defender)
		ongoing := at(Position{File: 6, Rank: 6}, Position{File: 1, Rank: 1}, Position{File: 8, Rank: 8}, Defender)
		require.Less(t, EvaluateAttacker(stalemate, 0), EvaluateAttacker(ongoing, 0))
	})

	t.Run("hanging the rook next to the defender king is heavily penalized", func(t *testing.T) {
		hanging := at(Position{File: 8, Rank: 8}, Position{File: 2, Rank: 2}, Position{File: 1, Rank: 1}, Defender)
		safe := at(Position{File: 8, Rank: 8}, Position{File: 2, Rank: 5}, Position{File: 1, Rank: 1}, Defender)
		require.Less(t, EvaluateAttacker(hanging, 0), EvaluateAttacker(safe, 0))
	})

	t.Run("cornered defender king beats centralized", func(t *testing.T) {
		cornered := at(Position{File: 6, Rank: 6}, Position{File: 1, Rank: 1}, Position{File: 8, Rank: 8}, Attacker)
		central := at(Position{File: 6, Rank: 6}, Position{File: 1, Rank: 1}, Position{File: 4, Rank: 5}, Attacker)
		require.Greater(t, EvaluateAttacker(cornered, 0), EvaluateAttacker(central, 0))
	})
}

func TestEvaluateDefender(t *testing.T) {
	t.Run("checkmate is the worst outcome", func(t *testing.T) {
		mate := at(Position{File: 1, Rank: 3}, Position{File: 8, Rank: 1}, Position{File: 1, Rank: 1}, Defender)
		ongoing := at(Position{File: 6, Rank: 6}, Position{File: 1, Rank: 1}, Position{File: 8, Rank: 8}, Defender)
		require.Less(t, EvaluateDefender(mate, 0), EvaluateDefender(ongoing, 0))
	})

	t.Run("drawing by stalemate is rewarded", func(t *testing.T) {
		stalemate := at(Position{File: 3, Rank: 3}, Position{File: 2, Rank: 2}, Position{File: 1, Rank: 1}, Defender)
		ongoing := at(Position{File: 3, Rank: 3}, Position{File: 2, Rank: 6}, Position{File: 1, Rank: 1}, Defender)
		require.Greater(t, EvaluateDefender(stalemate, 0), EvaluateDefender(ongoing, 0))
	})

	t.Run("winning the rook is rewarded", func(t *testing.T) {
		capturable := at(Position{File: 8, Rank: 8}, Position{File: 2, Rank: 2}, Position{File: 1, Rank: 1}, Defender)
		ongoing := at(Position{File: 8, Rank: 8}, Position{File: 2, Rank: 5}, Position{File: 1, Rank: 1}, Defender)
		require.Greater(t, EvaluateDefender(capturable, 0), EvaluateDefender(ongoing, 0))
	})

	t.Run("being in check is penalized", func(t *testing.T) {
		checked := at(Position{File: 1, Rank: 1}, Position{File: 1, Rank: 8}, Position{File: 5, Rank: 8}, Defender)
		quiet := at(Position{File: 1, Rank: 1}, Position{File: 1, Rank: 8}, Position{File: 5, Rank: 6}, Defender)
		require.Less(t, EvaluateDefender(checked, 0), EvaluateDefender(quiet, 0))
	})
}
