package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"krk/game"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, game.EvaluateAttacker)
	c.AddNode()
	c.AddNode()
	c.AddLeafEval()
	c.AddPrune()

	metric := c.Complete()
	require.Equal(t, 4, metric.Ply)
	require.Equal(t, 2, metric.Nodes)
	require.Equal(t, 1, metric.LeafEvals)
	require.Equal(t, 1, metric.Prunes)
	require.False(t, metric.Restarted)

	c.SetRestarted(true)
	c.Start(4, game.EvaluateAttacker)
	require.True(t, c.Complete().Restarted, "the restart flag survives a new search")

	c.Start(4, game.EvaluateAttacker)
	require.Zero(t, c.Complete().Nodes, "counters reset per search")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(4, nil)
	c.AddNode()
	require.Equal(t, SearchMetric{}, c.Complete())
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	games := []GameRecord{{
		ID: "g1",
		GameMetric: GameMetric{
			Scenario:   "corner",
			Status:     game.Checkmate,
			StartTime:  time.Now(),
			EndTime:    time.Now(),
			Duration:   time.Second,
			TotalMoves: 12,
		},
	}}
	moves := []MoveRecord{{
		Game: "g1",
		MoveMetric: MoveMetric{
			Step: 1,
			Side: game.Attacker,
			SearchMetric: SearchMetric{
				Ply:       4,
				Score:     42.5,
				Nodes:     100,
				LeafEvals: 80,
				Prunes:    7,
				Duration:  time.Millisecond,
			},
		},
	}}

	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "records land in one timestamped subdirectory")
	baseDir := filepath.Join(root, entries[0].Name())

	gameRows := readCSV(t, filepath.Join(baseDir, "game_records.csv"))
	require.Len(t, gameRows, 2)
	require.Equal(t, "g1", gameRows[1][0])
	require.Equal(t, "checkmate", gameRows[1][2])
	require.Equal(t, "12", gameRows[1][3])

	moveRows := readCSV(t, filepath.Join(baseDir, "move_records.csv"))
	require.Len(t, moveRows, 2)
	require.Equal(t, []string{"game", "step", "side", "score", "ply", "nodes", "leaf_evals", "prunes", "duration", "restarted"}, moveRows[0])
	require.Equal(t, "attacker", moveRows[1][2])
	require.Equal(t, "42.5", moveRows[1][3])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
