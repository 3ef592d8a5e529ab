package suite

import (
	"bufio"
	"os"
	"strings"

	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
)

// Case is one EPD record. Best and avoid moves are stored as UCI.
type Case struct {
	EPD string
	ID  string
	FEN string

	BestMoves  []string
	AvoidMoves []string
}

// EpdToFen keeps the four position fields of an EPD record and adds a zero
// half-move clock and move number one.
func EpdToFen(epd string) (string, Error) {
	parts := strings.Fields(epd)
	if len(parts) < 4 {
		return "", Errorf("invalid epd %q", epd)
	}
	return strings.Join(parts[0:4], " ") + " 0 1", NilError
}

func epdOperations(epd string) map[string]string {
	result := map[string]string{}

	parts := strings.Fields(epd)
	parts = parts[MinInt(4, len(parts)):]
	// some suites carry a placeholder for the missing clock fields
	for len(parts) > 0 && parts[0] == "-" {
		parts = parts[1:]
	}
	operations := strings.Join(parts, " ")

	for _, op := range strings.Split(operations, ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		opcode, operand, _ := strings.Cut(op, " ")
		result[opcode] = strings.TrimSpace(operand)
	}
	return result
}

func movesFromEpd(board *rules.Board, operand string) ([]string, Error) {
	moves := []string{}
	for _, san := range strings.FieldsFunc(operand, func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		move, err := board.ParseSAN(san)
		if err.HasError() {
			return []string{}, err
		}
		moves = append(moves, move.String())
	}
	return moves, NilError
}

func ParseEpd(epd string) (Case, Error) {
	epd = strings.TrimSpace(epd)
	fen, err := EpdToFen(epd)
	if err.HasError() {
		return Case{}, err
	}

	board, err := rules.NewBoardFromFEN(fen)
	if err.HasError() {
		return Case{}, err
	}

	ops := epdOperations(epd)
	result := Case{
		EPD: epd,
		ID:  strings.Trim(ops["id"], `"`),
		FEN: fen,
	}

	result.BestMoves, err = movesFromEpd(board, ops["bm"])
	if err.HasError() {
		return Case{}, err
	}
	result.AvoidMoves, err = movesFromEpd(board, ops["am"])
	if err.HasError() {
		return Case{}, err
	}

	if len(result.BestMoves) == 0 && len(result.AvoidMoves) == 0 {
		return Case{}, Errorf("no bm or am in epd: %v", epd)
	}
	return result, NilError
}

// ParseEpdLines parses every non-empty line that is not a # comment.
func ParseEpdLines(lines []string) ([]Case, Error) {
	cases := []Case{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := ParseEpd(line)
		if err.HasError() {
			return []Case{}, err
		}
		cases = append(cases, c)
	}
	return cases, NilError
}

func LoadEpd(path string) ([]Case, Error) {
	file, err := WrapReturn(os.Open(path))
	if err.HasError() {
		return []Case{}, err
	}
	defer file.Close()

	lines := []string{}
	fscanner := bufio.NewScanner(file)
	for fscanner.Scan() {
		lines = append(lines, fscanner.Text())
	}
	if err := fscanner.Err(); err != nil {
		return []Case{}, Wrap(err)
	}

	return ParseEpdLines(lines)
}

func (c Case) Passes(move string) bool {
	if len(c.BestMoves) > 0 && !Contains(c.BestMoves, move) {
		return false
	}
	if len(c.AvoidMoves) > 0 && Contains(c.AvoidMoves, move) {
		return false
	}
	return true
}
