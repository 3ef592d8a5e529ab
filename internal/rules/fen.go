package rules

import (
	"strings"
	"unicode"

	. "github.com/cricklet/chessai/internal/helpers"
)

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}

// MirrorFEN flips the board vertically and swaps the colors of every piece,
// the side to move, the castling rights and the en passant square. The
// mirrored position is the same game with the roles of White and Black
// exchanged.
func MirrorFEN(fen string) (string, Error) {
	fen, err := normalizeFEN(fen)
	if err.HasError() {
		return "", err
	}
	fields := strings.Fields(fen)

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", Errorf("invalid fen %q: expected 8 ranks, found %d", fen, len(ranks))
	}
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	switch fields[1] {
	case "w":
		fields[1] = "b"
	case "b":
		fields[1] = "w"
	default:
		return "", Errorf("invalid fen %q: side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		castling := []byte(swapCase(fields[2]))
		// keep the conventional KQkq order
		upper := FilterSlice(castling, func(c byte) bool { return c >= 'A' && c <= 'Z' })
		lower := FilterSlice(castling, func(c byte) bool { return c >= 'a' && c <= 'z' })
		fields[2] = string(upper) + string(lower)
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return "", Errorf("invalid fen %q: en passant square %q", fen, fields[3])
		}
		rank := fields[3][1]
		fields[3] = string([]byte{fields[3][0], '1' + '8' - rank})
	}

	return strings.Join(fields, " "), NilError
}
