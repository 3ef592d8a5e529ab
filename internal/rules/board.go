package rules

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/notnil/chess"
)

const (
	// Half-move clock value at which the 75-move rule ends the game.
	SeventyFiveMoveClock = 150
	// Number of occurrences of a position that ends the game.
	FivefoldRepetitions = 5
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type frame struct {
	position      *chess.Position
	move          *chess.Move // nil for the root
	key           uint64
	halfMoveClock int
	census        *census
}

type census struct {
	pieces       [2][NumPieceTypes]int
	pawnsOnFile  [2][8]int
	bishopColors [2]int
}

// Board implements Position on top of github.com/notnil/chess. Positions in
// notnil/chess are immutable, so the history is a stack of them and Pop just
// drops the top frame.
type Board struct {
	frames []frame
}

var _ Position = (*Board)(nil)

func NewBoard() *Board {
	board, err := NewBoardFromFEN(StartingFEN)
	if err.HasError() {
		panic(err.Error())
	}
	return board
}

func NewBoardFromFEN(fen string) (*Board, Error) {
	fen, err := normalizeFEN(fen)
	if err.HasError() {
		return nil, err
	}

	option, goErr := chess.FEN(fen)
	if goErr != nil {
		return nil, Errorf("invalid fen %q: %w", fen, goErr)
	}

	position := chess.NewGame(option).Position()
	return &Board{
		frames: []frame{newFrame(position, nil)},
	}, NilError
}

func normalizeFEN(fen string) (string, Error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return "", Errorf("invalid fen %q: expected 4 to 6 fields, found %d", fen, len(fields))
	}
	return strings.Join(fields, " "), NilError
}

func newFrame(position *chess.Position, move *chess.Move) frame {
	fields := strings.Fields(position.String())
	clock := 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			clock = n
		}
	}
	return frame{
		position:      position,
		move:          move,
		key:           zobristHash(fields),
		halfMoveClock: clock,
	}
}

func (b *Board) top() *frame {
	return &b.frames[len(b.frames)-1]
}

// Clone copies the history so the clone can be pushed and popped
// independently.
func (b *Board) Clone() *Board {
	frames := make([]frame, len(b.frames))
	copy(frames, b.frames)
	return &Board{frames}
}

func (b *Board) Position() *chess.Position {
	return b.top().position
}

func (b *Board) FEN() string {
	return b.top().position.String()
}

func (b *Board) String() string {
	return b.FEN()
}

// History is the UCI text of every move pushed since the board was created.
func (b *Board) History() []string {
	result := []string{}
	for _, f := range b.frames[1:] {
		result = append(result, f.move.String())
	}
	return result
}

func (b *Board) LegalMoves() []Move {
	moves := b.top().position.ValidMoves()
	result := make([]Move, len(moves))
	for i, m := range moves {
		result[i] = m
	}
	return result
}

func (b *Board) findMove(uci string) Optional[*chess.Move] {
	return FindInSlice(b.top().position.ValidMoves(), func(m *chess.Move) bool {
		return m.String() == uci
	})
}

func (b *Board) ParseMove(uci string) (Move, Error) {
	move := b.findMove(strings.ToLower(strings.TrimSpace(uci)))
	if move.IsEmpty() {
		return nil, Errorf("illegal move %q in %v", uci, b.FEN())
	}
	return move.Value(), NilError
}

// PushUCI parses and applies a sequence of UCI moves. On error the board is
// left after the last legal move.
func (b *Board) PushUCI(moves ...string) Error {
	for _, s := range moves {
		move, err := b.ParseMove(s)
		if err.HasError() {
			return err
		}
		b.Push(move)
	}
	return NilError
}

// Push applies a move obtained from LegalMoves or ParseMove. Pushing a move
// that is not legal here is a programming error and panics.
func (b *Board) Push(move Move) {
	m, ok := move.(*chess.Move)
	if !ok {
		found := b.findMove(move.String())
		if found.IsEmpty() {
			panic(fmt.Sprintf("illegal move %v in %v", move, b.FEN()))
		}
		m = found.Value()
	}
	b.frames = append(b.frames, newFrame(b.top().position.Update(m), m))
}

func (b *Board) Pop() {
	if len(b.frames) <= 1 {
		panic("pop without matching push")
	}
	b.frames[len(b.frames)-1] = frame{}
	b.frames = b.frames[:len(b.frames)-1]
}

func (b *Board) SAN(move Move) string {
	m, ok := move.(*chess.Move)
	if !ok {
		found := b.findMove(move.String())
		if found.IsEmpty() {
			return move.String()
		}
		m = found.Value()
	}
	return chess.AlgebraicNotation{}.Encode(b.top().position, m)
}

var sanDecorations = strings.NewReplacer("+", "", "#", "", "!", "", "?", "", "x", "", "=", "")

// ParseSAN matches standard algebraic notation against the legal moves.
// Check, capture and annotation marks are optional.
func (b *Board) ParseSAN(san string) (Move, Error) {
	position := b.top().position
	target := sanDecorations.Replace(strings.TrimSpace(san))
	move := FindInSlice(position.ValidMoves(), func(m *chess.Move) bool {
		return sanDecorations.Replace(chess.AlgebraicNotation{}.Encode(position, m)) == target
	})
	if move.IsEmpty() {
		return nil, Errorf("illegal move %q in %v", san, b.FEN())
	}
	return move.Value(), NilError
}

func (b *Board) SideToMove() Player {
	if b.top().position.Turn() == chess.Black {
		return Black
	}
	return White
}

func (b *Board) IsCheckmate() bool {
	return b.top().position.Status() == chess.Checkmate
}

func (b *Board) IsStalemate() bool {
	return b.top().position.Status() == chess.Stalemate
}

func (b *Board) IsDrawByOtherRule() bool {
	return b.IsInsufficientMaterial() ||
		b.HalfMoveClock() >= SeventyFiveMoveClock ||
		b.Repetitions() >= FivefoldRepetitions
}

func (b *Board) IsGameOver() bool {
	return b.IsCheckmate() || b.IsStalemate() || b.IsDrawByOtherRule()
}

func (b *Board) HalfMoveClock() int {
	return b.top().halfMoveClock
}

// Repetitions counts how many times the current position occurs in the
// history, including the current occurrence.
func (b *Board) Repetitions() int {
	key := b.top().key
	count := 0
	for i := range b.frames {
		if b.frames[i].key == key {
			count++
		}
	}
	return count
}

// IsInsufficientMaterial is true when neither side can possibly mate: bare
// kings, a single minor piece, or bishops that all stand on one square color.
func (b *Board) IsInsufficientMaterial() bool {
	c := b.census()
	for _, color := range []Player{White, Black} {
		if c.pieces[color][Pawn] > 0 || c.pieces[color][Rook] > 0 || c.pieces[color][Queen] > 0 {
			return false
		}
	}

	knights := c.pieces[White][Knight] + c.pieces[Black][Knight]
	bishops := c.pieces[White][Bishop] + c.pieces[Black][Bishop]
	if knights+bishops <= 1 {
		return true
	}
	if knights > 0 {
		return false
	}
	return c.bishopColors[0] == 0 || c.bishopColors[1] == 0
}

func (b *Board) PieceCount(kind PieceType, color Player) int {
	return b.census().pieces[color][kind]
}

func (b *Board) PawnsOnFile(color Player, file int) int {
	return b.census().pawnsOnFile[color][file]
}

func (b *Board) census() *census {
	f := b.top()
	if f.census != nil {
		return f.census
	}

	c := &census{}
	for sq, piece := range f.position.Board().SquareMap() {
		color, kind, ok := fromChessPiece(piece)
		if !ok {
			continue
		}
		c.pieces[color][kind]++
		if kind == Pawn {
			c.pawnsOnFile[color][int(sq.File())]++
		}
		if kind == Bishop {
			c.bishopColors[(int(sq.File())+int(sq.Rank()))%2]++
		}
	}
	f.census = c
	return c
}

func fromChessPiece(piece chess.Piece) (Player, PieceType, bool) {
	if piece == chess.NoPiece {
		return White, 0, false
	}

	color := White
	if piece.Color() == chess.Black {
		color = Black
	}

	switch piece.Type() {
	case chess.Rook:
		return color, Rook, true
	case chess.Knight:
		return color, Knight, true
	case chess.Bishop:
		return color, Bishop, true
	case chess.King:
		return color, King, true
	case chess.Queen:
		return color, Queen, true
	case chess.Pawn:
		return color, Pawn, true
	}
	return color, 0, false
}
