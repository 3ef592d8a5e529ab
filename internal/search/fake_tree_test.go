package search

import (
	"fmt"
	"math/rand"

	"github.com/cricklet/chessai/internal/evaluation"
	"github.com/cricklet/chessai/internal/rules"
)

// fakeNode is a game tree with a White-relative static value at every node.
type fakeNode struct {
	name     string
	value    evaluation.Score
	children []*fakeNode
}

type fakeMove struct {
	node *fakeNode
}

func (m fakeMove) String() string {
	return m.node.name
}

type fakePosition struct {
	root  rules.Player
	stack []*fakeNode
}

var _ rules.Position = (*fakePosition)(nil)

func newFakePosition(root *fakeNode, sideToMove rules.Player) *fakePosition {
	return &fakePosition{sideToMove, []*fakeNode{root}}
}

func (p *fakePosition) top() *fakeNode {
	return p.stack[len(p.stack)-1]
}

func (p *fakePosition) LegalMoves() []rules.Move {
	result := []rules.Move{}
	for _, child := range p.top().children {
		result = append(result, fakeMove{child})
	}
	return result
}

func (p *fakePosition) Push(move rules.Move) {
	p.stack = append(p.stack, move.(fakeMove).node)
}

func (p *fakePosition) Pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *fakePosition) SideToMove() rules.Player {
	if len(p.stack)%2 == 1 {
		return p.root
	}
	return p.root.Other()
}

func (p *fakePosition) IsCheckmate() bool       { return false }
func (p *fakePosition) IsStalemate() bool       { return false }
func (p *fakePosition) IsDrawByOtherRule() bool { return false }
func (p *fakePosition) IsGameOver() bool        { return false }

func (p *fakePosition) PieceCount(kind rules.PieceType, color rules.Player) int { return 0 }
func (p *fakePosition) PawnsOnFile(color rules.Player, file int) int          { return 0 }

// fakeEvaluator reads the static value of the current node and returns it
// from the perspective of the side to move.
type fakeEvaluator struct{}

func (fakeEvaluator) Evaluate(pos rules.Position) evaluation.Score {
	p := pos.(*fakePosition)
	if p.SideToMove() == rules.Black {
		return -p.top().value
	}
	return p.top().value
}

func leaf(name string, value evaluation.Score) *fakeNode {
	return &fakeNode{name: name, value: value}
}

func node(name string, children ...*fakeNode) *fakeNode {
	return &fakeNode{name: name, children: children}
}

func randomTree(rng *rand.Rand, name string, depth int) *fakeNode {
	n := &fakeNode{
		name:  name,
		value: evaluation.Score(rng.Intn(201) - 100),
	}
	if depth == 0 {
		return n
	}
	numChildren := rng.Intn(5)
	for i := 0; i < numChildren; i++ {
		n.children = append(n.children, randomTree(rng, fmt.Sprintf("%v.%d", name, i), depth-1))
	}
	return n
}

// minimax is a direct White-relative reference for the searcher.
func minimax(n *fakeNode, depth int, maximizing bool) evaluation.Score {
	if depth == 0 || len(n.children) == 0 {
		return n.value
	}
	best := minimax(n.children[0], depth-1, !maximizing)
	for _, child := range n.children[1:] {
		score := minimax(child, depth-1, !maximizing)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}
	return best
}
