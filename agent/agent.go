package agent

import (
	"fmt"

	"krk/experiments/metrics"
	"krk/game"
	"krk/searcher"
)

// historyLimit caps the rolling state history kept per agent. The history
// exists for UI context only; play does not depend on it.
const historyLimit = 16

// Agent supplies successor states for one side. FindMove returns nil when
// the given state is no longer playable (status outside continue/check).
type Agent interface {
	Side() game.Side
	FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error)
}

// SearchAgent picks moves with depth-bounded alpha-beta search.
type SearchAgent struct {
	side    game.Side
	search  *searcher.AlphaBeta
	history []*game.GameState
}

// NewSearchAgent builds a search-driven agent with side-appropriate
// defaults: the attacker evaluates with EvaluateAttacker and cuts repeating
// lines off, the defender evaluates with EvaluateDefender. Extra options
// override the defaults.
func NewSearchAgent(side game.Side, options ...searcher.Option) *SearchAgent {
	defaults := []searcher.Option{searcher.WithEvaluationFn(game.EvaluateDefender)}
	if side == game.Attacker {
		defaults = []searcher.Option{
			searcher.WithEvaluationFn(game.EvaluateAttacker),
			searcher.WithCycleCutoff(4, 8),
		}
	}
	return &SearchAgent{
		side:   side,
		search: searcher.NewAlphaBeta(append(defaults, options...)...),
	}
}

func (a *SearchAgent) Side() game.Side { return a.side }

// Search exposes the underlying searcher, for interrupt delivery.
func (a *SearchAgent) Search() *searcher.AlphaBeta { return a.search }

func (a *SearchAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	if state.CurrentPlayer() != a.side {
		panic(fmt.Sprintf("%s agent asked to move on ply %d", a.side, state.Ply))
	}
	a.remember(state)
	if !state.Status().Ongoing() {
		return nil, metrics.SearchMetric{}, nil
	}
	return a.search.FindNextState(state)
}

// History returns the most recently visited states, newest first.
func (a *SearchAgent) History() []*game.GameState { return a.history }

func (a *SearchAgent) remember(state *game.GameState) {
	a.history = append([]*game.GameState{state}, a.history...)
	if len(a.history) > historyLimit {
		a.history = a.history[:historyLimit]
	}
}

// MoveSource delivers externally supplied piece moves, e.g. from parsed
// interactive input. Implementations re-prompt on parse failures; NextMove
// only errors when no further moves can be obtained.
type MoveSource interface {
	NextMove(state *game.GameState) (game.Piece, error)
}

// ExternalAgent commits moves delivered by a MoveSource, validating each
// against the state's legal moves and asking again on rejection.
type ExternalAgent struct {
	side   game.Side
	source MoveSource
}

func NewExternalAgent(side game.Side, source MoveSource) *ExternalAgent {
	return &ExternalAgent{side: side, source: source}
}

func (a *ExternalAgent) Side() game.Side { return a.side }

func (a *ExternalAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	if !state.Status().Ongoing() {
		return nil, metrics.SearchMetric{}, nil
	}
	for {
		move, err := a.source.NextMove(state)
		if err != nil {
			return nil, metrics.SearchMetric{}, fmt.Errorf("external move source: %w", err)
		}
		if move.Owner() == a.side && isLegal(state, move) {
			return state.ChildFromMove(move), metrics.SearchMetric{}, nil
		}
	}
}

func isLegal(state *game.GameState, move game.Piece) bool {
	for _, legal := range state.LegalMoves() {
		if legal.EqualTo(move) {
			return true
		}
	}
	return false
}
