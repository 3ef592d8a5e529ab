package selfplay

import (
	"strings"
	"testing"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/cricklet/chessai/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine(name string, depth int) Player {
	return Player{Name: name, Searcher: search.NewSearcher(), Depth: depth}
}

func TestMateInOne(t *testing.T) {
	record, err := Play(
		"rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2",
		engine("white", 1), engine("black", 1))
	require.True(t, IsNil(err), err)

	assert.Equal(t, []string{"d8h4"}, record.Moves)
	assert.Equal(t, []string{"Qh4#"}, record.SAN)
	assert.Equal(t, "0-1", record.Result)
	assert.Equal(t, "checkmate", record.Method)
	assert.Equal(t, 1, record.Plies)
	assert.Contains(t, record.PGN, "Qh4")
	assert.Contains(t, record.PGN, "black")
}

func TestPlyLimit(t *testing.T) {
	lines := []string{}
	logger := FuncLogger(func(message string) {
		lines = append(lines, message)
	})

	record, err := Play(rules.StartingFEN, engine("a", 1), engine("b", 2),
		WithMaxPlies{4}, WithLogger{logger})
	require.True(t, IsNil(err), err)

	assert.Equal(t, 4, record.Plies)
	assert.Len(t, record.Moves, 4)
	assert.Len(t, record.Scores, 4)
	assert.Equal(t, "*", record.Result)
	assert.Equal(t, "", record.Method)
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "1. a "), lines[0])

	board, err := rules.NewBoardFromFEN(rules.StartingFEN)
	require.True(t, IsNil(err), err)
	require.True(t, IsNil(board.PushUCI(record.Moves...)))
	assert.Equal(t, board.FEN(), record.FinalFEN)
}

func TestFinishedPositions(t *testing.T) {
	testCases := []struct {
		fen    string
		result string
		method string
	}{
		{"kQK5/8/8/8/8/8/8/8 b - - 0 1", "1-0", "checkmate"},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "1/2-1/2", "stalemate"},
		{"8/8/8/8/8/8/8/k1K5 w - - 0 1", "1/2-1/2", "insufficient material"},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 150 90", "1/2-1/2", "seventy-five move rule"},
	}

	for _, tc := range testCases {
		record, err := Play(tc.fen, engine("white", 2), engine("black", 2))
		require.True(t, IsNil(err), err)

		assert.Equal(t, 0, record.Plies, tc.fen)
		assert.Equal(t, tc.result, record.Result, tc.fen)
		assert.Equal(t, tc.method, record.Method, tc.fen)
	}
}

func TestPlayErrors(t *testing.T) {
	_, err := Play("not a fen", engine("white", 1), engine("black", 1))
	assert.True(t, err.HasError())

	_, err = Play(rules.StartingFEN, Player{Name: "nobody"}, engine("black", 1))
	assert.True(t, err.HasError())

	_, err = Play(rules.StartingFEN, engine("white", -1), engine("black", 1))
	assert.True(t, err.HasError())
}
