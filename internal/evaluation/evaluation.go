package evaluation

import (
	"fmt"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
)

type Config struct {
	// indexed by rules.PieceType
	PieceValues        [rules.NumPieceTypes]Score
	DoubledPawnPenalty Score
	MobilityWeight     Score
}

func DefaultConfig() Config {
	c := Config{
		DoubledPawnPenalty: 10,
		MobilityWeight:     1,
	}
	c.PieceValues[rules.Pawn] = 100
	c.PieceValues[rules.Knight] = 320
	c.PieceValues[rules.Bishop] = 330
	c.PieceValues[rules.Rook] = 500
	c.PieceValues[rules.Queen] = 900
	c.PieceValues[rules.King] = 20000
	return c
}

const (
	// Most legal moves known for any position.
	maxLegalMoves = 218
	// Pieces besides the king, promotions included.
	maxNonKingPieces = 15
	// Extra pawns that can share files, per side.
	maxDoubledPawns = 7
)

// MaxAbsolute bounds the magnitude of every non-terminal score under c. The
// king is counted once and every other piece as the most valuable non-king
// piece.
func (c Config) MaxAbsolute() Score {
	maxPiece := Score(0)
	for _, kind := range rules.AllPieceTypes {
		if kind != rules.King && c.PieceValues[kind] > maxPiece {
			maxPiece = c.PieceValues[kind]
		}
	}
	return c.PieceValues[rules.King] +
		maxNonKingPieces*maxPiece +
		2*maxDoubledPawns*c.DoubledPawnPenalty +
		maxLegalMoves*c.MobilityWeight
}

// Validate rejects negative weights and any config whose scores could reach
// MateThreshold, where they would be read as mates.
func (c Config) Validate() Error {
	for _, kind := range rules.AllPieceTypes {
		if c.PieceValues[kind] < 0 {
			return Errorf("negative value %v for piece %v", c.PieceValues[kind], kind)
		}
		if c.PieceValues[kind] >= MateThreshold {
			return Errorf("value %v for piece %v reaches mate scores", c.PieceValues[kind], kind)
		}
	}
	if c.DoubledPawnPenalty < 0 {
		return Errorf("negative doubled pawn penalty %v", c.DoubledPawnPenalty)
	}
	if c.DoubledPawnPenalty >= MateThreshold {
		return Errorf("doubled pawn penalty %v reaches mate scores", c.DoubledPawnPenalty)
	}
	if c.MobilityWeight < 0 {
		return Errorf("negative mobility weight %v", c.MobilityWeight)
	}
	if c.MobilityWeight >= MateThreshold {
		return Errorf("mobility weight %v reaches mate scores", c.MobilityWeight)
	}
	if bound := c.MaxAbsolute(); bound >= MateThreshold {
		return Errorf("scores up to %v reach mate scores at %v", bound, MateThreshold)
	}
	return NilError
}

type Terminal int

const (
	NotTerminal Terminal = iota
	Checkmate
	Stalemate
	Draw
)

func (t Terminal) String() string {
	return [4]string{"", "checkmate", "stalemate", "draw"}[t]
}

// Breakdown lists the terms of an evaluation. Material, PawnStructure,
// Mobility and Absolute are White-relative; Total is from the perspective of
// the side to move and is what Evaluate returns.
type Breakdown struct {
	Terminal      Terminal
	Material      Score
	PawnStructure Score
	Mobility      Score
	Absolute      Score
	Total         Score
}

func (b Breakdown) String() string {
	if b.Terminal != NotTerminal {
		return fmt.Sprintf("%v (%v)", b.Terminal, ScoreString(b.Total))
	}
	return fmt.Sprintf("material %d, pawns %d, mobility %d, total %d",
		b.Material, b.PawnStructure, b.Mobility, b.Total)
}

// Evaluator scores positions with a fixed Config. It holds no other state
// and is safe for concurrent use.
type Evaluator struct {
	config Config
}

func NewEvaluator(config Config) *Evaluator {
	return &Evaluator{config}
}

func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultConfig())
}

// Evaluate scores pos for the side to move: positive is good for whoever
// moves next.
func (e *Evaluator) Evaluate(pos rules.Position) Score {
	return e.Breakdown(pos).Total
}

func (e *Evaluator) Breakdown(pos rules.Position) Breakdown {
	sign := Score(1)
	if pos.SideToMove() == rules.Black {
		sign = -1
	}

	if pos.IsCheckmate() {
		return Breakdown{
			Terminal: Checkmate,
			Absolute: -Mate * sign,
			Total:    -Mate,
		}
	}
	if pos.IsStalemate() {
		return Breakdown{Terminal: Stalemate}
	}
	if pos.IsDrawByOtherRule() {
		return Breakdown{Terminal: Draw}
	}

	result := Breakdown{
		Material:      e.material(pos),
		PawnStructure: e.pawnStructure(pos),
		Mobility:      e.mobility(pos),
	}
	result.Absolute = result.Material + result.PawnStructure + result.Mobility
	result.Total = result.Absolute * sign
	return result
}

func (e *Evaluator) material(pos rules.Position) Score {
	score := Score(0)
	for _, kind := range rules.AllPieceTypes {
		diff := pos.PieceCount(kind, rules.White) - pos.PieceCount(kind, rules.Black)
		score += Score(diff) * e.config.PieceValues[kind]
	}
	return score
}

func (e *Evaluator) pawnStructure(pos rules.Position) Score {
	score := Score(0)
	for file := 0; file < 8; file++ {
		if n := pos.PawnsOnFile(rules.White, file); n > 1 {
			score -= Score(n-1) * e.config.DoubledPawnPenalty
		}
		if n := pos.PawnsOnFile(rules.Black, file); n > 1 {
			score += Score(n-1) * e.config.DoubledPawnPenalty
		}
	}
	return score
}

func (e *Evaluator) mobility(pos rules.Position) Score {
	n := Score(len(pos.LegalMoves())) * e.config.MobilityWeight
	if pos.SideToMove() == rules.Black {
		return -n
	}
	return n
}
