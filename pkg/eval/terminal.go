package eval

import "github.com/blackriver/jieqi/pkg/board"

// MateScore and PlyPenalty are engine tuning parameters: MateScore is a
// large finite sentinel for a decisive result, reduced by PlyPenalty per ply
// of distance so that faster mates always score strictly higher than slower
// ones, while remaining well clear of ordinary material scores.
const (
	MateScore  Score = 100000
	PlyPenalty Score = 10
)

// TerminalEval returns the terminal score for a game result from pov's
// perspective at the given ply distance from the search root, or evaluates
// the position normally if the game is still ongoing.
func TerminalEval(e Evaluator, b *board.Board, pov board.Color, ply int, legalMoves []board.Move) Score {
	result := b.GetGameResult(legalMoves)
	switch result {
	case board.Ongoing:
		return e.Evaluate(b, pov)
	case board.Draw:
		return 0
	default:
		winner := board.Red
		if result == board.BlackWin {
			winner = board.Black
		}
		mate := MateScore - Score(ply)*PlyPenalty
		if winner == pov {
			return mate
		}
		return -mate
	}
}

// MateDistance reports the ply distance implied by a terminal mate score, if
// s is large enough in magnitude to plausibly be one (rather than an
// ordinary material evaluation).
func (s Score) MateDistance() (int, bool) {
	abs := s
	if abs < 0 {
		abs = -abs
	}
	if abs <= MateScore/2 {
		return 0, false
	}
	ply := int((MateScore - abs) / PlyPenalty)
	if ply < 0 {
		ply = 0
	}
	return ply, true
}
