package rules

import "fmt"

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	NumPieceTypes
)

var AllPieceTypes = [NumPieceTypes]PieceType{
	Rook, Knight, Bishop, King, Queen, Pawn,
}

func (p PieceType) String() string {
	return [NumPieceTypes + 1]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

// Move is opaque outside of the rules package. Its String is the UCI
// long-algebraic form, e.g. "e2e4" or "e7e8q".
type Move interface {
	fmt.Stringer
}

// Position is the contract the evaluator and searcher rely on. Push and Pop
// mutate the position in place; every Push must be matched by a Pop, after
// which the position is exactly as it was before the Push.
type Position interface {
	LegalMoves() []Move
	Push(move Move)
	Pop()

	SideToMove() Player

	IsCheckmate() bool
	IsStalemate() bool
	IsDrawByOtherRule() bool
	IsGameOver() bool

	PieceCount(kind PieceType, color Player) int
	PawnsOnFile(color Player, file int) int
}
