package rules

import (
	"math/rand"
	"strings"
)

const _zobristPieces = "PNBRQKpnbrqk"

var zobristPieceAtSquare [12][64]uint64
var zobristSideToMove uint64
var zobristCastlingRights [4]uint64
var zobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	zobristSideToMove = r.Uint64()
	for i := 0; i < 4; i++ {
		zobristCastlingRights[i] = r.Uint64()
	}
	for i := 0; i < 8; i++ {
		zobristEnPassant[i] = r.Uint64()
	}
	for piece := 0; piece < 12; piece++ {
		for index := 0; index < 64; index++ {
			zobristPieceAtSquare[piece][index] = r.Uint64()
		}
	}
}

// zobristHash identifies a position for repetition counting from the first
// four fields of its FEN: placement, side to move, castling rights and en
// passant square. Move clocks are ignored.
func zobristHash(fields []string) uint64 {
	hash := uint64(0)

	rank, file := 7, 0
	for _, c := range fields[0] {
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece := strings.IndexRune(_zobristPieces, c)
			if piece >= 0 && rank >= 0 && file < 8 {
				hash ^= zobristPieceAtSquare[piece][rank*8+file]
			}
			file++
		}
	}

	if fields[1] == "b" {
		hash ^= zobristSideToMove
	}

	for _, c := range fields[2] {
		if i := strings.IndexRune("KQkq", c); i >= 0 {
			hash ^= zobristCastlingRights[i]
		}
	}

	if ep := fields[3]; ep != "-" && len(ep) == 2 && ep[0] >= 'a' && ep[0] <= 'h' {
		hash ^= zobristEnPassant[ep[0]-'a']
	}

	return hash
}
