package search

import (
	"fmt"
	"time"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/dustin/go-humanize"
)

/*
Scores inside the tree are White-relative: White maximizes, Black minimizes.
The evaluator works from the side to move, so leaves are flipped when Black
is to move. The root converts back to the perspective of its side to move.

alphaBeta(depth, alpha, beta, maximizing)
	for each move:
		push, alphaBeta(depth-1, alpha, beta, !maximizing), pop
		raise alpha (white) or lower beta (black), stop once beta <= alpha
*/

type Evaluator interface {
	Evaluate(pos rules.Position) evaluation.Score
}

var _ Evaluator = (*evaluation.Evaluator)(nil)

type LoopResult int

const (
	LoopContinue LoopResult = iota
	LoopBreak
)

type Searcher struct {
	Logger
	evaluator         Evaluator
	pruning           bool
	previousBestFirst bool
	debugSearchTree   bool
}

type SearchOption interface {
	apply(s *Searcher)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(s *Searcher) {
	s.Logger = o.Logger
}

type WithEvaluator struct {
	Evaluator Evaluator
}

func (o WithEvaluator) apply(s *Searcher) {
	s.evaluator = o.Evaluator
}

// WithoutPruning turns the search into plain minimax. The results are
// identical; only the amount of work differs.
type WithoutPruning struct {
}

func (o WithoutPruning) apply(s *Searcher) {
	s.pruning = false
}

// WithPreviousBestFirst searches the best root move of the previous
// iteration first. Scores are unchanged, but ties may resolve differently.
type WithPreviousBestFirst struct {
}

func (o WithPreviousBestFirst) apply(s *Searcher) {
	s.previousBestFirst = true
}

type WithDebugSearchTree struct {
}

func (o WithDebugSearchTree) apply(s *Searcher) {
	s.debugSearchTree = true
}

func NewSearcher(opts ...SearchOption) *Searcher {
	s := &Searcher{
		Logger:    &SilentLogger,
		evaluator: evaluation.NewDefaultEvaluator(),
		pruning:   true,
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

// run holds the state of a single FindBestMove call, so the Searcher itself
// can be shared.
type run struct {
	*Searcher
	pos   rules.Position
	stats *DepthStats
	tree  *DebugSearchTree
	ply   int
}

func (r *run) forEachMove(moves []rules.Move, callback func(move rules.Move) LoopResult) {
	for _, move := range moves {
		result := LoopContinue
		func() {
			r.pos.Push(move)
			r.ply++

			defer func() {
				r.ply--
				r.pos.Pop()
			}()

			result = callback(move)
		}()
		if result == LoopBreak {
			break
		}
	}
}

// evaluate scores the current node White-relative. Mates are pulled towards
// zero by their distance from the root so nearer mates score higher.
func (r *run) evaluate() evaluation.Score {
	r.stats.Evaluations++

	score := r.evaluator.Evaluate(r.pos)
	if evaluation.IsMate(score) {
		if score < 0 {
			score += evaluation.Score(r.ply)
		} else {
			score -= evaluation.Score(r.ply)
		}
	}

	if r.pos.SideToMove() == rules.Black {
		return -score
	}
	return score
}

func (r *run) debugPush(move rules.Move, maximizing bool, alpha, beta evaluation.Score) {
	if r.tree != nil {
		r.tree.MovePush(move.String(), maximizing, alpha, beta)
	}
}

func (r *run) debugPop(move rules.Move, maximizing bool, alpha, beta, score evaluation.Score) {
	if r.tree != nil {
		r.tree.MovePop(move.String(), maximizing, alpha, beta, score)
	}
}

func (r *run) alphaBeta(depth int, alpha, beta evaluation.Score, maximizing bool) evaluation.Score {
	r.stats.Nodes++

	if depth == 0 || r.pos.IsGameOver() {
		return r.evaluate()
	}

	moves := r.pos.LegalMoves()
	if len(moves) == 0 {
		return r.evaluate()
	}

	best := evaluation.Inf
	if maximizing {
		best = -evaluation.Inf
	}

	r.forEachMove(moves, func(move rules.Move) LoopResult {
		r.debugPush(move, maximizing, alpha, beta)
		score := r.alphaBeta(depth-1, alpha, beta, !maximizing)
		r.debugPop(move, maximizing, alpha, beta, score)

		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}

		if r.pruning && beta <= alpha {
			r.stats.Cutoffs++
			return LoopBreak
		}
		return LoopContinue
	})

	return best
}

func moveToFront(moves []rules.Move, first rules.Move) []rules.Move {
	result := make([]rules.Move, 0, len(moves))
	result = append(result, first)
	for _, move := range moves {
		if move.String() != first.String() {
			result = append(result, move)
		}
	}
	return result
}

// FindBestMove searches pos with iterative deepening up to maxDepth plies.
// pos is mutated during the search and restored before returning. A
// maxDepth of zero only evaluates pos.
func (s *Searcher) FindBestMove(pos rules.Position, maxDepth int) (Result, Error) {
	if pos == nil {
		return Result{}, Errorf("no position to search")
	}
	if maxDepth < 0 {
		return Result{}, Errorf("invalid max depth %d", maxDepth)
	}

	start := time.Now()
	r := &run{
		Searcher: s,
		pos:      pos,
	}
	if s.debugSearchTree {
		r.tree = &DebugSearchTree{}
	}

	result := Result{
		DebugSearchTree: r.tree,
	}

	maximizing := pos.SideToMove() == rules.White
	perspective := func(score evaluation.Score) evaluation.Score {
		if maximizing {
			return score
		}
		return -score
	}

	moves := pos.LegalMoves()
	if maxDepth == 0 || len(moves) == 0 {
		r.stats = &DepthStats{Nodes: 1}
		result.Score = perspective(r.evaluate())
		r.stats.Elapsed = time.Since(start)
		result.Stats.add(*r.stats)
		s.Printf("static %v, %v legal moves\n", evaluation.ScoreString(result.Score), len(moves))
		return result, NilError
	}

	var previousBest Optional[rules.Move]
	for depth := 1; depth <= maxDepth; depth++ {
		depthStart := time.Now()
		r.stats = &DepthStats{Depth: depth, Nodes: 1}

		ordered := moves
		if s.previousBestFirst && previousBest.HasValue() {
			ordered = moveToFront(moves, previousBest.Value())
		}

		label := fmt.Sprintf("depth %d", depth)
		if r.tree != nil {
			r.tree.DepthPush(label)
		}

		bestScore := evaluation.Inf
		if maximizing {
			bestScore = -evaluation.Inf
		}
		bestMove := Empty[rules.Move]()
		rootMoves := make([]ScoredMove, 0, len(ordered))

		r.forEachMove(ordered, func(move rules.Move) LoopResult {
			r.debugPush(move, maximizing, -evaluation.Inf, evaluation.Inf)
			score := r.alphaBeta(depth-1, -evaluation.Inf, evaluation.Inf, !maximizing)
			r.debugPop(move, maximizing, -evaluation.Inf, evaluation.Inf, score)

			rootMoves = append(rootMoves, ScoredMove{move, perspective(score)})
			if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
				bestScore = score
				bestMove = Some(move)
			}
			return LoopContinue
		})

		if r.tree != nil {
			r.tree.DepthPop(label, bestScore)
		}

		r.stats.BestMove = bestMove
		r.stats.Score = perspective(bestScore)
		r.stats.Elapsed = time.Since(depthStart)
		result.Stats.add(*r.stats)

		result.Move = bestMove
		result.Score = r.stats.Score
		result.Depth = depth
		result.RootMoves = rootMoves

		s.Printf("depth %d, nodes %v, evaluations %v, cutoffs %v, best %v, score %v, %v\n",
			depth,
			humanize.Comma(int64(r.stats.Nodes)),
			humanize.Comma(int64(r.stats.Evaluations)),
			humanize.Comma(int64(r.stats.Cutoffs)),
			bestMove.Value(),
			evaluation.ScoreString(r.stats.Score),
			r.stats.Elapsed.Round(time.Microsecond))

		previousBest = bestMove
	}

	result.Stats.Elapsed = time.Since(start)
	return result, NilError
}
