// Package eval contains static position evaluation: material, piece-square
// tables, hidden-pool expected value, and one-ply capture potential (spec
// §4.E).
package eval

import (
	"github.com/blackriver/jieqi/pkg/board"
	"github.com/blackriver/jieqi/pkg/hidden"
)

// Evaluator is a static position evaluator, reporting a Score from pov's
// perspective.
type Evaluator interface {
	Evaluate(b *board.Board, pov board.Color) Score
}

// HiddenDiscount and CapturePotentialWeight are engine tuning parameters the
// spec leaves open (§9): HiddenDiscount values a still-hidden piece at this
// fraction of its pool expected value (the variant's documented "×0.8"
// factor); CapturePotentialWeight scales the one-ply capture-threat term.
const (
	HiddenDiscount         = 0.8
	CapturePotentialWeight = 0.3
)

// Standard is the engine's default evaluator: material (with hidden pieces
// valued at their discounted pool expectation) plus piece-square tables plus
// a one-ply capture-potential term.
type Standard struct{}

func (Standard) Evaluate(b *board.Board, pov board.Color) Score {
	raw := materialAndPositional(b) + capturePotential(b)
	if pov == board.Red {
		return raw
	}
	return -raw
}

// materialAndPositional sums, for every piece on the board, its color-signed
// contribution: discounted pool expected value if hidden, else base material
// plus piece-square bonus.
func materialAndPositional(b *board.Board) Score {
	pools := [board.NumColors]hidden.Distribution{
		hidden.FromBoard(b, board.Red),
		hidden.FromBoard(b, board.Black),
	}

	var raw Score
	b.ForEachPiece(func(sq board.Square, p board.Piece) {
		sign := Score(1)
		if p.Color == board.Black {
			sign = -1
		}

		if p.IsHidden {
			value := Score(pools[p.Color].ExpectedValue() * HiddenDiscount)
			raw += sign * value
			return
		}

		value := Score(p.ActualType.BaseValue() + pieceSquareValue(p.ActualType, p.Color, sq))
		raw += sign * value
	})
	return raw
}

// capturePotential scores the material threat each side poses the other one
// ply ahead: the best capture a side could make right now, valuing hidden
// victims at the opponent's pool expected value rather than their board
// piece-square bonus. Kings are excluded since capturing one ends the game
// via mate scoring, not material evaluation.
func capturePotential(b *board.Board) Score {
	best := [board.NumColors]Score{}
	pools := [board.NumColors]hidden.Distribution{
		hidden.FromBoard(b, board.Red),
		hidden.FromBoard(b, board.Black),
	}

	for _, side := range [2]board.Color{board.Red, board.Black} {
		for _, m := range b.PseudoLegalMoves(side) {
			victim, ok := b.PieceAt(m.To)
			if !ok || victim.EffectiveType() == board.King {
				continue
			}
			var value Score
			if victim.IsHidden {
				value = Score(pools[victim.Color].ExpectedValue())
			} else {
				value = Score(victim.ActualType.BaseValue())
			}
			if value > best[side] {
				best[side] = value
			}
		}
	}

	return (best[board.Red] - best[board.Black]) * CapturePotentialWeight
}
