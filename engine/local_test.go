package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"krk/agent"
	"krk/game"
	"krk/searcher"
)

func openingState(t *testing.T, maxPly int) *game.GameState {
	t.Helper()
	s := game.NewGameState(
		game.NewKing(game.Attacker, game.Position{File: 6, Rank: 6}),
		game.NewRook(game.Attacker, game.Position{File: 1, Rank: 1}),
		game.NewKing(game.Defender, game.Position{File: 8, Rank: 8}),
		maxPly,
	)
	require.Equal(t, game.Continue, s.Status())
	return s
}

func agents(seed uint64) (*agent.SearchAgent, *agent.SearchAgent) {
	attacker := agent.NewSearchAgent(game.Attacker, searcher.WithPly(2), searcher.WithSeed(seed), searcher.WithMetrics())
	defender := agent.NewSearchAgent(game.Defender, searcher.WithPly(2), searcher.WithSeed(seed+1), searcher.WithMetrics())
	return attacker, defender
}

func TestNewLocalEngineRejectsUnplayableRoot(t *testing.T) {
	overlapping := game.NewGameState(
		game.NewKing(game.Attacker, game.Position{File: 1, Rank: 1}),
		game.NewRook(game.Attacker, game.Position{File: 1, Rank: 1}),
		game.NewKing(game.Defender, game.Position{File: 8, Rank: 8}),
		10,
	)
	attacker, defender := agents(1)
	_, err := NewLocalEngine("overlap", overlapping, attacker, defender, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a legitimate starting state")
}

func TestNewLocalEngineRejectsSwappedAgents(t *testing.T) {
	attacker, defender := agents(1)
	require.Panics(t, func() {
		NewLocalEngine("swapped", openingState(t, 10), defender, attacker, nil)
	})
}

func TestRunPlaysToLeaf(t *testing.T) {
	attacker, defender := agents(17)
	e, err := NewLocalEngine("short", openingState(t, 6), attacker, defender, nil)
	require.NoError(t, err)

	status, err := e.Run()
	require.NoError(t, err)
	require.True(t, e.State.IsLeaf())
	require.Equal(t, e.State.Status(), status)
	require.NotEqual(t, game.Continue, status)

	require.Len(t, e.Records(), e.State.Ply, "one record per committed ply")
	for i, record := range e.Records() {
		require.Equal(t, e.ID, record.Game)
		require.Equal(t, i+1, record.Step)
	}

	gameRecord := e.GameRecord()
	require.Equal(t, e.ID, gameRecord.ID)
	require.Equal(t, "short", gameRecord.Scenario)
	require.Equal(t, status, gameRecord.Status)
	require.Equal(t, e.State.Ply/2, gameRecord.TotalMoves)
}

func TestRunReportsEachCommittedState(t *testing.T) {
	var reported []*game.GameState
	var banners []string
	report := func(s *game.GameState, banner string) {
		reported = append(reported, s)
		banners = append(banners, banner)
	}

	attacker, defender := agents(23)
	e, err := NewLocalEngine("reported", openingState(t, 4), attacker, defender, report)
	require.NoError(t, err)

	_, err = e.Run()
	require.NoError(t, err)

	require.Len(t, reported, e.State.Ply+1, "the root plus every committed state")
	require.NotEmpty(t, banners[0], "the first report carries the start banner")
	require.Same(t, e.State, reported[len(reported)-1])
}

func TestRunReleasesRetiredStates(t *testing.T) {
	root := openingState(t, 4)
	attacker, defender := agents(29)
	e, err := NewLocalEngine("released", root, attacker, defender, nil)
	require.NoError(t, err)

	_, err = e.Run()
	require.NoError(t, err)
	require.True(t, root.Released(), "the played-past root is retired")
	require.False(t, e.State.Released(), "the final state stays live")
}

func TestRunResumesAfterInterrupt(t *testing.T) {
	attacker, defender := agents(31)
	e, err := NewLocalEngine("resumed", openingState(t, 6), attacker, defender, nil)
	require.NoError(t, err)

	attacker.Search().Interrupt()
	_, err = e.Run()
	require.ErrorIs(t, err, searcher.ErrInterrupted)
	require.Equal(t, 0, e.State.Ply, "an interrupted search commits nothing")

	status, err := e.Run()
	require.NoError(t, err)
	require.True(t, e.State.IsLeaf())
	require.NotEqual(t, game.Continue, status)
	require.True(t, e.Records()[0].Restarted, "the re-run search is flagged as restarted")
}
