package searcher

import (
	"errors"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"krk/experiments/metrics"
	"krk/game"
)

// DefaultPly is the search depth used when no option overrides it.
const DefaultPly = 4

// ErrInterrupted is returned when Interrupt is called during a search. The
// same search may be re-run safely: explored children are cached on their
// parents, so re-traversal is idempotent.
var ErrInterrupted = errors.New("search interrupted")

type Option func(ab *AlphaBeta)

// AlphaBeta is a depth-bounded alpha-beta minimax over the game-state tree.
// The root is always a MAX node from the searching side's perspective; ties
// among the best-scoring successors are broken uniformly at random.
type AlphaBeta struct {
	ply      int
	evaluate game.Evaluate
	// cycleMin/cycleMax bound the repetition windows that cut a MAX branch
	// off early. Zero means no cycle cutoff.
	cycleMin    int
	cycleMax    int
	rng         *rand.Rand
	metrics     metrics.Collector
	interrupted atomic.Bool
}

// WithPly sets the search depth in plies.
func WithPly(ply int) Option {
	return func(ab *AlphaBeta) {
		if ply > 0 {
			ab.ply = ply
		}
	}
}

// WithEvaluationFn sets the heuristic used at cutoff nodes.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

// WithCycleCutoff makes MAX nodes treat a detected repetition of an even
// window length in [minLength, maxLength) as a leaf. Only the attacker's
// searches use this.
func WithCycleCutoff(minLength, maxLength int) Option {
	return func(ab *AlphaBeta) {
		ab.cycleMin = minLength
		ab.cycleMax = maxLength
	}
}

// WithSeed seeds the tie-break source, making move choice reproducible.
func WithSeed(seed uint64) Option {
	return func(ab *AlphaBeta) {
		ab.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the tie-break source directly.
func WithRand(rng *rand.Rand) Option {
	return func(ab *AlphaBeta) {
		if rng != nil {
			ab.rng = rng
		}
	}
}

// WithMetrics records search counters for later analysis.
func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		ply:      DefaultPly,
		evaluate: game.EvaluateAttacker,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

// Interrupt requests a cooperative stop. The running FindNextState returns
// ErrInterrupted at its next root-child boundary.
func (ab *AlphaBeta) Interrupt() {
	ab.interrupted.Store(true)
}

type scoredChild struct {
	score float64
	child *game.GameState
}

// FindNextState scores every immediate successor of root with a MIN call at
// depth 0 and full (-inf, +inf) bounds, then picks uniformly among the
// successors tied at the top score.
func (ab *AlphaBeta) FindNextState(root *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	ab.metrics.Start(ab.ply, ab.evaluate)

	var results []scoredChild
	it := root.Children()
	for child, ok := it.Next(); ok; child, ok = it.Next() {
		if ab.interrupted.Load() {
			ab.interrupted.Store(false)
			ab.metrics.SetRestarted(true)
			return nil, ab.metrics.Complete(), ErrInterrupted
		}
		score := ab.minValue(child, math.Inf(-1), math.Inf(1), 0)
		results = append(results, scoredChild{score: score, child: child})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	// The winners are the maximal prefix sharing the top score. An empty
	// prefix means the scoring logic is broken; producing an arbitrary move
	// instead would corrupt the game, so fail loudly.
	var winners []scoredChild
	topScore := math.Inf(-1)
	for _, result := range results {
		if result.score >= topScore {
			topScore = result.score
			winners = append(winners, result)
		} else {
			break
		}
	}
	if len(winners) == 0 {
		panic("no winners picked")
	}

	picked := winners[ab.rng.Intn(len(winners))]
	metric := ab.metrics.Complete()
	metric.Score = picked.score
	ab.metrics.SetRestarted(false)
	return picked.child, metric, nil
}

// maxValue evaluates a MAX node: the searching side is to move.
func (ab *AlphaBeta) maxValue(s *game.GameState, alpha, beta float64, depth int) float64 {
	if s.IsLeaf() || depth >= ab.ply || ab.cycleCutoff(s) {
		ab.metrics.AddLeafEval()
		return ab.evaluate(s, depth)
	}
	ab.metrics.AddNode()

	v := math.Inf(-1)
	it := s.Children()
	for child, ok := it.Next(); ok; child, ok = it.Next() {
		v = math.Max(v, ab.minValue(child, alpha, beta, depth+1))
		if v >= beta {
			ab.metrics.AddPrune()
			return v
		}
		alpha = math.Max(alpha, v)
	}
	return v
}

// minValue evaluates a MIN node: the opponent is to move.
func (ab *AlphaBeta) minValue(s *game.GameState, alpha, beta float64, depth int) float64 {
	if s.IsLeaf() || depth >= ab.ply {
		ab.metrics.AddLeafEval()
		return ab.evaluate(s, depth)
	}
	ab.metrics.AddNode()

	v := math.Inf(1)
	it := s.Children()
	for child, ok := it.Next(); ok; child, ok = it.Next() {
		v = math.Min(v, ab.maxValue(child, alpha, beta, depth+1))
		if v <= alpha {
			ab.metrics.AddPrune()
			return v
		}
		beta = math.Min(beta, v)
	}
	return v
}

func (ab *AlphaBeta) cycleCutoff(s *game.GameState) bool {
	return ab.cycleMax > 0 && s.CheckCycle(ab.cycleMin, ab.cycleMax)
}
