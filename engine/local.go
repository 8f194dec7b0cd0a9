package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"krk/agent"
	"krk/experiments/metrics"
	"krk/game"
)

// LocalEngine alternates two in-process agents over a shared game state.
// Each committed move retires the previous root: its memoized data is
// released so the played line is the only part of the tree kept alive.
type LocalEngine struct {
	ID       string
	Scenario string
	State    *game.GameState

	agents  map[game.Side]agent.Agent
	report  Reporter
	records []metrics.MoveRecord

	startTime time.Time
	started   bool
}

// NewLocalEngine validates the root and wires both agents. Roots that are
// not cleanly playable (status continue) are rejected; setup must supply a
// different placement.
func NewLocalEngine(scenario string, root *game.GameState, attacker, defender agent.Agent, report Reporter) (*LocalEngine, error) {
	if root.Status() != game.Continue {
		return nil, fmt.Errorf("root state is not a legitimate starting state (status: %s)", root.Status())
	}
	if attacker.Side() != game.Attacker || defender.Side() != game.Defender {
		panic("agents wired to the wrong sides")
	}
	if report == nil {
		report = func(*game.GameState, string) {}
	}
	return &LocalEngine{
		ID:       uuid.NewString(),
		Scenario: scenario,
		State:    root,
		agents: map[game.Side]agent.Agent{
			game.Attacker: attacker,
			game.Defender: defender,
		},
		report: report,
	}, nil
}

// Run plays until a leaf state. When a search is interrupted the error is
// surfaced with the engine left at the same state, so a second Run resumes
// the game by re-running that search.
func (e *LocalEngine) Run() (game.Status, error) {
	if !e.started {
		e.started = true
		e.startTime = time.Now()
		e.report(e.State, fmt.Sprintf("Starting game %s...", e.ID))
		log.Info().
			Str("game", e.ID).
			Str("scenario", e.Scenario).
			Int("max_ply", e.State.MaxPly).
			Msg("game started")
	}

	for !e.State.IsLeaf() {
		side := e.State.CurrentPlayer()
		next, metric, err := e.agents[side].FindMove(e.State)
		if err != nil {
			return e.State.Status(), err
		}
		if next == nil { // Agent sees no playable state
			break
		}

		e.records = append(e.records, metrics.MoveRecord{
			Game: e.ID,
			MoveMetric: metrics.MoveMetric{
				Step:         next.Ply,
				Side:         side,
				SearchMetric: metric,
			},
		})

		log.Info().
			Str("game", e.ID).
			Stringer("side", side).
			Stringer("state", next).
			Stringer("status", next.Status()).
			Int("nodes", metric.Nodes).
			Dur("search", metric.Duration).
			Msg("move committed")

		previous := e.State
		e.State = next
		previous.Release(next)

		e.report(e.State, "")
	}

	status := e.State.Status()
	log.Info().
		Str("game", e.ID).
		Stringer("status", status).
		Int("moves", e.State.Ply/2).
		Msg("game over")
	return status, nil
}

func (e *LocalEngine) Records() []metrics.MoveRecord { return e.records }

func (e *LocalEngine) GameRecord() metrics.GameRecord {
	endTime := time.Now()
	return metrics.GameRecord{
		ID: e.ID,
		GameMetric: metrics.GameMetric{
			Scenario:   e.Scenario,
			Status:     e.State.Status(),
			StartTime:  e.startTime,
			EndTime:    endTime,
			Duration:   endTime.Sub(e.startTime),
			TotalMoves: e.State.Ply / 2,
		},
	}
}
