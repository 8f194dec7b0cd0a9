package engine

import (
	"krk/experiments/metrics"
	"krk/game"
)

// Reporter renders a committed state for the user, optionally preceded by a
// banner line. Rendering is a collaborator concern; the engine only hands
// states over.
type Reporter func(state *game.GameState, banner string)

// Engine runs a game to a terminal state.
type Engine interface {
	// Run plays from the current state until a leaf is reached, returning
	// the final status. A searcher.ErrInterrupted is recoverable: calling
	// Run again resumes from the same state.
	Run() (game.Status, error)
	// Records returns the per-move records accumulated so far.
	Records() []metrics.MoveRecord
	// GameRecord summarizes the game once Run has returned.
	GameRecord() metrics.GameRecord
}
