package metrics

import (
	"sync/atomic"
	"time"

	"krk/game"
)

// SearchMetric summarizes one bounded alpha-beta search. Score is the
// minimax value of the successor the search settled on.
type SearchMetric struct {
	Ply       int
	Duration  time.Duration
	Evaluate  game.Evaluate
	Score     float64
	Nodes     int
	LeafEvals int
	Prunes    int
	Restarted bool
}

// MoveMetric ties a search to its step in a game.
type MoveMetric struct {
	Step int
	Side game.Side
	SearchMetric
}

// GameMetric summarizes a finished game.
type GameMetric struct {
	Scenario   string
	Status     game.Status
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector gathers counters during a search. The searcher drives it; the
// engine reads the completed metric.
type Collector interface {
	Start(ply int, evaluate game.Evaluate)
	SetRestarted(value bool)
	AddNode()
	AddLeafEval()
	AddPrune()
	Complete() SearchMetric
}

type collector struct {
	ply       int
	evaluate  game.Evaluate
	startTime time.Time
	nodes     atomic.Int64
	leafEvals atomic.Int64
	prunes    atomic.Int64
	restarted atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(ply int, evaluate game.Evaluate) {
	c.startTime = time.Now()
	c.ply = ply
	c.evaluate = evaluate
	c.nodes.Store(0)
	c.leafEvals.Store(0)
	c.prunes.Store(0)
}

func (c *collector) SetRestarted(value bool) {
	c.restarted.Store(value)
}

func (c *collector) AddNode() {
	c.nodes.Add(1)
}

func (c *collector) AddLeafEval() {
	c.leafEvals.Add(1)
}

func (c *collector) AddPrune() {
	c.prunes.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Ply:       c.ply,
		Duration:  time.Since(c.startTime),
		Evaluate:  c.evaluate,
		Nodes:     int(c.nodes.Load()),
		LeafEvals: int(c.leafEvals.Load()),
		Prunes:    int(c.prunes.Load()),
		Restarted: c.restarted.Load(),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(ply int, evaluate game.Evaluate) {}
func (d *dummyCollector) SetRestarted(value bool)               {}
func (d *dummyCollector) AddNode()                              {}
func (d *dummyCollector) AddLeafEval()                          {}
func (d *dummyCollector) AddPrune()                             {}
func (d *dummyCollector) Complete() SearchMetric                { return SearchMetric{} }
