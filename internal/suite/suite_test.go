package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindsTheRightCapture(t *testing.T) {
	epd := "r1bqk1r1/1p1p1n2/p1n2pN1/2p1b2Q/2P1Pp2/1PN5/PB4PP/R4RK1 w q - - bm Rxf4; id \"ERET 001 - Relief\";"

	c, err := ParseEpd(epd)
	require.True(t, IsNil(err), err)

	assert.Equal(t, "ERET 001 - Relief", c.ID)
	assert.Equal(t, "r1bqk1r1/1p1p1n2/p1n2pN1/2p1b2Q/2P1Pp2/1PN5/PB4PP/R4RK1 w q - 0 1", c.FEN)
	assert.Equal(t, []string{"f1f4"}, c.BestMoves)
	assert.Empty(t, c.AvoidMoves)
}

func TestEpdPawn(t *testing.T) {
	epd := "r1b2r1k/ppp2ppp/8/4p3/2BPQ3/P3P1K1/1B3PPP/n3q1NR w - - bm dxe5; id \"ERET 011 - Attacking Castle\";"

	c, err := ParseEpd(epd)
	require.True(t, IsNil(err), err)
	assert.Equal(t, []string{"d4e5"}, c.BestMoves)
}

func TestDisambiguation(t *testing.T) {
	c, err := ParseEpd("5k2/8/1p6/2P5/1b6/8/8/5K2 b - - bm Bxc5; am bxc5;")
	require.True(t, IsNil(err), err)

	assert.Equal(t, []string{"b4c5"}, c.BestMoves)
	assert.Equal(t, []string{"b6c5"}, c.AvoidMoves)
	assert.True(t, c.Passes("b4c5"))
	assert.False(t, c.Passes("b6c5"))
	assert.False(t, c.Passes("f8e8"))
}

func TestMultipleBestMoves(t *testing.T) {
	c, err := ParseEpd("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - bm e4 d4; id \"open\";")
	require.True(t, IsNil(err), err)
	assert.Equal(t, []string{"e2e4", "d2d4"}, c.BestMoves)
	assert.True(t, c.Passes("d2d4"))
}

func TestParseEpdErrors(t *testing.T) {
	_, err := ParseEpd("8/8/8 w")
	assert.True(t, err.HasError())

	_, err = ParseEpd("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - id \"no moves\";")
	assert.True(t, err.HasError())

	_, err = ParseEpd("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - bm e5;")
	assert.True(t, err.HasError())
}

const mateSuite = `
# fool's mate and friends
rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 bm Qh4#; id "black mates";
3rkr2/3p1p2/8/8/b5p1/2p1r1pb/4R3/4K3 w - - bm Rxe3#; id "only move";
rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 bm Qe7; id "misses mate";
`

func TestRun(t *testing.T) {
	cases, err := ParseEpdLines(strings.Split(mateSuite, "\n"))
	require.True(t, IsNil(err), err)
	require.Len(t, cases, 3)

	report, err := Run(cases, search.NewSearcher(), 1, SilentProgressBar())
	require.True(t, IsNil(err), err)

	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "2 / 3 passed at depth 1", report.String())

	assert.Equal(t, "Qh4#", report.Results[0].SAN)
	assert.True(t, report.Results[0].Passed)
	assert.Equal(t, "e2e3", report.Results[1].Move)
	assert.False(t, report.Results[2].Passed)
	assert.Equal(t, "d8h4", report.Results[2].Move)
	assert.Greater(t, report.Nodes, 0)
}

func TestRunCountsProgress(t *testing.T) {
	cases, err := ParseEpdLines(strings.Split(mateSuite, "\n"))
	require.True(t, IsNil(err), err)

	added := 0
	closed := false
	progress := ProgressBar{
		Set:   func(int) {},
		Add:   func(i int) { added += i },
		Close: func() { closed = true },
	}

	_, err = Run(cases, search.NewSearcher(), 1, progress)
	require.True(t, IsNil(err), err)
	assert.Equal(t, 3, added)
	assert.True(t, closed)
}

func TestLoadEpd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mates.epd")
	require.NoError(t, os.WriteFile(path, []byte(mateSuite), 0600))

	cases, err := LoadEpd(path)
	require.True(t, IsNil(err), err)
	assert.Len(t, cases, 3)
	assert.Equal(t, "only move", cases[1].ID)

	_, err = LoadEpd(filepath.Join(t.TempDir(), "missing.epd"))
	assert.True(t, err.HasError())
}
