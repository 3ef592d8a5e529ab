package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesEvaluator(t *testing.T) {
	c := Default()
	assert.True(t, IsNil(c.Validate()))
	assert.Equal(t, 3, c.Search.Depth)
	assert.Equal(t, evaluation.DefaultConfig(), c.EvaluatorConfig())
}

func TestParseOverlaysDefaults(t *testing.T) {
	c, err := Parse([]byte(`
search:
  depth: 4
evaluation:
  piece_values:
    queen: 950
  mobility_weight: 0
log:
  verbose: true
`))
	require.True(t, IsNil(err), err)

	assert.Equal(t, 4, c.Search.Depth)
	assert.False(t, c.Search.PreviousBestFirst)
	assert.Equal(t, 950, c.Evaluation.PieceValues.Queen)
	assert.Equal(t, 100, c.Evaluation.PieceValues.Pawn)
	assert.Equal(t, 10, c.Evaluation.DoubledPawnPenalty)
	assert.True(t, c.Log.Verbose)

	e := c.EvaluatorConfig()
	assert.Equal(t, evaluation.Score(950), e.PieceValues[rules.Queen])
	assert.Equal(t, evaluation.Score(0), e.MobilityWeight)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse([]byte(""))
	require.True(t, IsNil(err), err)
	assert.Equal(t, Default(), c)
}

func TestParseRejectsInvalid(t *testing.T) {
	testCases := []string{
		"search:\n  depth: -1\n",
		"search:\n  depth: 40\n",
		"evaluation:\n  piece_values:\n    pawn: -5\n",
		"evaluation:\n  mobility_weight: -1\n",
		"search:\n  unknown: 3\n",
		"search: [",
		"evaluation:\n  piece_values:\n    queen: 5000000\n",
		"evaluation:\n  piece_values:\n    rook: 100000\n",
		"evaluation:\n  mobility_weight: 10000\n",
	}
	for _, tc := range testCases {
		_, err := Parse([]byte(tc))
		assert.True(t, err.HasError(), tc)
	}
}

func TestParseKeepsMaterialBelowMate(t *testing.T) {
	_, err := Parse([]byte("evaluation:\n  piece_values:\n    queen: 5000000\n"))
	require.True(t, err.HasError())
	assert.Contains(t, err.Message(), "reaches mate scores")

	c, err := Parse([]byte("evaluation:\n  piece_values:\n    queen: 20000\n"))
	require.True(t, IsNil(err), err)
	assert.Less(t, int(c.EvaluatorConfig().MaxAbsolute()), int(evaluation.MateThreshold))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chessai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  depth: 2\n  previous_best_first: true\n"), 0600))

	c, err := Load(path)
	require.True(t, IsNil(err), err)
	assert.Equal(t, 2, c.Search.Depth)
	assert.True(t, c.Search.PreviousBestFirst)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, err.HasError())
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Search.Depth = 5
	c.Log.DebugSearchTree = true

	data, err := c.Marshal()
	require.True(t, IsNil(err), err)

	parsed, err := Parse(data)
	require.True(t, IsNil(err), err)
	assert.Equal(t, c, parsed)
}

func TestSearcherOptions(t *testing.T) {
	c := Default()
	assert.Len(t, c.SearcherOptions(&DefaultLogger), 1)

	c.Log.Verbose = true
	c.Search.PreviousBestFirst = true
	c.Log.DebugSearchTree = true
	assert.Len(t, c.SearcherOptions(&DefaultLogger), 4)

	c.Log.Verbose = false
	result, err := c.NewSearcher(nil).FindBestMove(rules.NewBoard(), 1)
	require.True(t, IsNil(err), err)
	assert.True(t, result.Move.HasValue())
	assert.NotNil(t, result.DebugSearchTree)
}
