package selfplay

import (
	"fmt"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/cricklet/chessai/internal/search"
	"github.com/notnil/chess"
)

type Searcher interface {
	FindBestMove(pos rules.Position, maxDepth int) (search.Result, Error)
}

type Player struct {
	Name     string
	Searcher Searcher
	Depth    int
}

type Record struct {
	Moves []string
	SAN   []string
	// White-relative score each move was chosen with
	Scores []evaluation.Score
	Plies  int

	// "1-0", "0-1", "1/2-1/2" or "*" when the ply limit was hit
	Result   string
	Method   string
	FinalFEN string
	PGN      string
}

type settings struct {
	Logger
	maxPlies int
}

type PlayOption interface {
	apply(s *settings)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(s *settings) {
	s.Logger = o.Logger
}

// WithMaxPlies stops the game unfinished after n plies. The default is 400.
type WithMaxPlies struct {
	N int
}

func (o WithMaxPlies) apply(s *settings) {
	s.maxPlies = o.N
}

func outcome(board *rules.Board) (string, string) {
	switch {
	case board.IsCheckmate():
		if board.SideToMove() == rules.White {
			return "0-1", "checkmate"
		}
		return "1-0", "checkmate"
	case board.IsStalemate():
		return "1/2-1/2", "stalemate"
	case board.IsInsufficientMaterial():
		return "1/2-1/2", "insufficient material"
	case board.HalfMoveClock() >= rules.SeventyFiveMoveClock:
		return "1/2-1/2", "seventy-five move rule"
	case board.Repetitions() >= rules.FivefoldRepetitions:
		return "1/2-1/2", "fivefold repetition"
	}
	return "*", ""
}

// Play runs a game between white and black starting from fen. The board the
// engines search is mirrored into a notnil/chess game for the PGN.
func Play(fen string, white Player, black Player, opts ...PlayOption) (Record, Error) {
	s := settings{
		Logger:   &SilentLogger,
		maxPlies: 400,
	}
	for _, opt := range opts {
		opt.apply(&s)
	}
	if s.maxPlies < 0 {
		return Record{}, Errorf("invalid ply limit %d", s.maxPlies)
	}
	for _, p := range []Player{white, black} {
		if p.Searcher == nil {
			return Record{}, Errorf("player %q has no searcher", p.Name)
		}
	}

	board, err := rules.NewBoardFromFEN(fen)
	if err.HasError() {
		return Record{}, err
	}

	option, goErr := chess.FEN(board.FEN())
	if goErr != nil {
		return Record{}, Wrap(goErr)
	}
	game := chess.NewGame(option)
	game.AddTagPair("White", white.Name)
	game.AddTagPair("Black", black.Name)

	record := Record{}
	for !board.IsGameOver() && record.Plies < s.maxPlies {
		player := white
		if board.SideToMove() == rules.Black {
			player = black
		}

		result, err := player.Searcher.FindBestMove(board, player.Depth)
		if err.HasError() {
			return record, err
		}
		if result.Move.IsEmpty() {
			return record, Errorf("%v found no move in %v", player.Name, board.FEN())
		}

		move := result.Move.Value()
		san := board.SAN(move)

		gameMove := FindInSlice(game.ValidMoves(), func(m *chess.Move) bool {
			return m.String() == move.String()
		})
		if gameMove.IsEmpty() {
			return record, Errorf("game out of sync at %v: %v", board.FEN(), move)
		}
		if err := game.Move(gameMove.Value()); err != nil {
			return record, Wrap(err)
		}

		score := result.Score
		if board.SideToMove() == rules.Black {
			score = -score
		}
		board.Push(move)

		record.Moves = append(record.Moves, move.String())
		record.SAN = append(record.SAN, san)
		record.Scores = append(record.Scores, score)
		record.Plies++

		s.Printf("%d. %v %v (%v)\n", record.Plies, player.Name, san, evaluation.ScoreString(result.Score))
	}

	record.Result, record.Method = outcome(board)
	record.FinalFEN = board.FEN()
	record.PGN = game.String()

	s.Println(fmt.Sprintf("%v %v after %d plies", record.Result, record.Method, record.Plies))
	return record, NilError
}
