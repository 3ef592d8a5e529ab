package search

import (
	"fmt"
	"slices"
	"time"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/dustin/go-humanize"
)

// ScoredMove is a root move with the score of its subtree, from the
// perspective of the side to move at the root.
type ScoredMove struct {
	Move  rules.Move
	Score evaluation.Score
}

func (m ScoredMove) String() string {
	return fmt.Sprintf("%v %v", m.Move, evaluation.ScoreString(m.Score))
}

type DepthStats struct {
	Depth       int
	Nodes       int
	Evaluations int
	Cutoffs     int
	BestMove    Optional[rules.Move]
	Score       evaluation.Score
	Elapsed     time.Duration
}

type Stats struct {
	Nodes       int
	Evaluations int
	Cutoffs     int
	Elapsed     time.Duration
	Depths      []DepthStats
}

func (s *Stats) add(d DepthStats) {
	s.Nodes += d.Nodes
	s.Evaluations += d.Evaluations
	s.Cutoffs += d.Cutoffs
	s.Elapsed += d.Elapsed
	s.Depths = append(s.Depths, d)
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes %v, evaluations %v, cutoffs %v, %v",
		humanize.Comma(int64(s.Nodes)),
		humanize.Comma(int64(s.Evaluations)),
		humanize.Comma(int64(s.Cutoffs)),
		s.Elapsed.Round(time.Microsecond))
}

type Result struct {
	// empty when there was nothing to search: no legal moves or depth 0
	Move Optional[rules.Move]
	// from the perspective of the side to move at the root
	Score evaluation.Score
	// deepest completed iteration
	Depth int
	// every root move in search order, scored by the deepest iteration
	RootMoves []ScoredMove
	Stats     Stats

	DebugSearchTree *DebugSearchTree
}

func (r Result) String() string {
	move := "(none)"
	if r.Move.HasValue() {
		move = r.Move.Value().String()
	}
	return fmt.Sprintf("%v %v depth %d", move, evaluation.ScoreString(r.Score), r.Depth)
}

// TopMoves returns up to k root moves, best first. Equal scores keep search
// order.
func (r Result) TopMoves(k int) []ScoredMove {
	sorted := slices.Clone(r.RootMoves)
	slices.SortStableFunc(sorted, func(a, b ScoredMove) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
	return sorted[:MinInt(MaxInt(k, 0), len(sorted))]
}
