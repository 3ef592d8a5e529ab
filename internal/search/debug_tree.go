package search

import (
	"fmt"
	"strings"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
)

type debugSearchLine struct {
	DebugString string
	Depth       int
	Alpha       evaluation.Score
	Beta        evaluation.Score
	Score       Optional[evaluation.Score]
}

// DebugSearchTree records every push and pop the searcher performs. Scores
// are White-relative, as they are inside the tree.
type DebugSearchTree struct {
	CurrentDepth int
	Result       []debugSearchLine
}

// DebugString renders completed lines shallower than depth. Lines are
// written when a node is popped, so they are walked backwards to put every
// parent above its children.
func (s *DebugSearchTree) DebugString(depth int) string {
	result := strings.Builder{}
	for i := range s.Result {
		line := s.Result[len(s.Result)-i-1]
		if line.Depth >= depth || line.Score.IsEmpty() {
			continue
		}
		result.WriteString(fmt.Sprintf("%v%v (%v %v) %v\n",
			strings.Repeat(" ", line.Depth),
			line.DebugString,
			evaluation.ScoreString(line.Alpha),
			evaluation.ScoreString(line.Beta),
			evaluation.ScoreString(line.Score.Value())))
	}
	return result.String()
}

func (s *DebugSearchTree) DepthPush(label string) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: "> " + label,
		Depth:       s.CurrentDepth,
		Alpha:       -evaluation.Inf,
		Beta:        evaluation.Inf,
	})
	s.CurrentDepth += 1
}

func (s *DebugSearchTree) DepthPop(label string, result evaluation.Score) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: "$ " + label,
		Depth:       s.CurrentDepth,
		Alpha:       -evaluation.Inf,
		Beta:        evaluation.Inf,
		Score:       Some(result),
	})
}

func playerString(isMaximizing bool) string {
	if isMaximizing {
		return "white"
	}
	return "black"
}

func (s *DebugSearchTree) MovePush(move string, isMaximizing bool, alpha evaluation.Score, beta evaluation.Score) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("> %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
	})
	s.CurrentDepth += 1
}

func (s *DebugSearchTree) MovePop(move string, isMaximizing bool, alpha evaluation.Score, beta evaluation.Score, result evaluation.Score) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("$ %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
		Score:       Some(result),
	})
}
