package suite

import (
	"fmt"
	"time"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/cricklet/chessai/internal/search"
)

type Searcher interface {
	FindBestMove(pos rules.Position, maxDepth int) (search.Result, Error)
}

var _ Searcher = (*search.Searcher)(nil)

type CaseResult struct {
	Case
	// UCI and SAN of the chosen move, empty when there was none
	Move   string
	SAN    string
	Score  evaluation.Score
	Nodes  int
	Passed bool
}

func (r CaseResult) String() string {
	status := "fail"
	if r.Passed {
		status = "pass"
	}
	return fmt.Sprintf("%v %v: %v (%v)", status, r.ID, r.SAN, evaluation.ScoreString(r.Score))
}

type Report struct {
	Depth   int
	Results []CaseResult
	Passed  int
	Failed  int
	Nodes   int
	Elapsed time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("%d / %d passed at depth %d", r.Passed, len(r.Results), r.Depth)
}

func runCase(c Case, searcher Searcher, depth int) (CaseResult, Error) {
	board, err := rules.NewBoardFromFEN(c.FEN)
	if err.HasError() {
		return CaseResult{}, err
	}

	result, err := searcher.FindBestMove(board, depth)
	if err.HasError() {
		return CaseResult{}, err
	}

	caseResult := CaseResult{
		Case:  c,
		Score: result.Score,
		Nodes: result.Stats.Nodes,
	}
	if result.Move.HasValue() {
		move := result.Move.Value()
		caseResult.Move = move.String()
		caseResult.SAN = board.SAN(move)
		caseResult.Passed = c.Passes(caseResult.Move)
	}
	return caseResult, NilError
}

// Run searches every case to depth and scores the chosen moves. progress is
// told about each finished case.
func Run(cases []Case, searcher Searcher, depth int, progress ProgressBar) (Report, Error) {
	start := time.Now()
	report := Report{Depth: depth}
	defer progress.Close()

	for i, c := range cases {
		result, err := runCase(c, searcher, depth)
		if err.HasError() {
			return report, Join(Errorf("case %d %q", i, c.ID), err)
		}

		report.Results = append(report.Results, result)
		report.Nodes += result.Nodes
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		progress.Add(1)
	}

	report.Elapsed = time.Since(start)
	return report, NilError
}
