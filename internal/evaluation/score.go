package evaluation

import "fmt"

type Score int

const (
	// Mate is the score of a side that has been checkmated, negated.
	Mate Score = 1_000_000
	// Inf bounds every reachable score, mates included.
	Inf Score = Mate + 1
	// Scores this close to Mate encode a forced mate in Mate-|score| plies.
	MateThreshold Score = Mate - 1000
)

func IsMate(score Score) bool {
	return score >= MateThreshold || score <= -MateThreshold
}

// MatePlies is the number of plies until the mate encoded by score.
func MatePlies(score Score) int {
	if score < 0 {
		score = -score
	}
	return int(Mate - score)
}

func ScoreString(score Score) string {
	if score >= MateThreshold {
		return fmt.Sprint("mate+", MatePlies(score))
	}
	if score <= -MateThreshold {
		return fmt.Sprint("mate-", MatePlies(score))
	}
	return fmt.Sprint(int(score))
}
