// Package hidden implements the per-color hidden-piece pool model used by
// evaluation and by the search's chance-node expansion.
package hidden

import (
	"sort"

	"github.com/blackriver/jieqi/pkg/board"
)

// TypeProbability is one entry of a Distribution's possible identities.
type TypeProbability struct {
	Type        board.PieceType
	Probability float64
}

// Distribution is the remaining-identity pool for one color, derived from a
// Board snapshot. The pool is the initial count per type minus on-board
// revealed survivors, known captures, and a deterministic proportional share
// of unknown-identity captures. On-board hidden pieces are not counted
// directly; when the captured record is complete, Total equals the number of
// the color's hidden pieces.
type Distribution struct {
	Color     board.Color
	Remaining map[board.PieceType]int
	Total     int
}

// FromBoard derives c's hidden-piece distribution from b.
func FromBoard(b *board.Board, c board.Color) Distribution {
	revealed := make(map[board.PieceType]int)
	b.ForEachPiece(func(_ board.Square, p board.Piece) {
		if p.Color == c && !p.IsHidden {
			revealed[p.ActualType]++
		}
	})

	knownCaptured := make(map[board.PieceType]int)
	unknownCaptures := 0
	for _, c := range b.Captured(c) {
		if c.Type == board.NoPieceType {
			unknownCaptures++
			continue
		}
		knownCaptured[c.Type]++
	}

	remaining := make(map[board.PieceType]int, len(board.AllPieceTypes))
	sum := 0
	for _, t := range board.AllPieceTypes {
		r := t.InitialCount() - revealed[t] - knownCaptured[t]
		if r < 0 {
			r = 0
		}
		remaining[t] = r
		sum += r
	}

	remaining, sum = distributeUnknownCaptures(remaining, sum, unknownCaptures)

	return Distribution{Color: c, Remaining: remaining, Total: sum}
}

// distributeUnknownCaptures reduces remaining by unknownCaptures: each type's
// share is floor(remaining_t * unknownCaptures / sum), then any leftover
// (from rounding down) is assigned one at a time, in descending piece-value
// order, to each type that still has headroom (spec §4.D, §9 "Hidden-pool
// accounting under unknown captures").
func distributeUnknownCaptures(remaining map[board.PieceType]int, sum, unknownCaptures int) (map[board.PieceType]int, int) {
	if unknownCaptures <= 0 || sum <= 0 {
		return remaining, sum
	}
	if unknownCaptures > sum {
		unknownCaptures = sum
	}

	shares := make(map[board.PieceType]int, len(remaining))
	assigned := 0
	for _, t := range board.AllPieceTypes {
		share := remaining[t] * unknownCaptures / sum
		shares[t] = share
		assigned += share
	}

	leftover := unknownCaptures - assigned
	order := make([]board.PieceType, len(board.AllPieceTypes))
	copy(order, board.AllPieceTypes)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].BaseValue() > order[j].BaseValue()
	})

	for leftover > 0 {
		progressed := false
		for _, t := range order {
			if leftover == 0 {
				break
			}
			if remaining[t]-shares[t] > 0 {
				shares[t]++
				leftover--
				progressed = true
			}
		}
		if !progressed {
			break // no headroom left anywhere; should not happen since unknownCaptures <= sum
		}
	}

	out := make(map[board.PieceType]int, len(remaining))
	newSum := 0
	for t, r := range remaining {
		v := r - shares[t]
		if v < 0 {
			v = 0
		}
		out[t] = v
		newSum += v
	}
	return out, newSum
}

// PossibleTypes returns the non-zero-probability identities in descending
// piece-value order, for deterministic iteration by the search.
func (d Distribution) PossibleTypes() []TypeProbability {
	if d.Total <= 0 {
		return nil
	}
	var out []TypeProbability
	for _, t := range board.AllPieceTypes {
		if r := d.Remaining[t]; r > 0 {
			out = append(out, TypeProbability{Type: t, Probability: float64(r) / float64(d.Total)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type.BaseValue() > out[j].Type.BaseValue()
	})
	return out
}

// ExpectedValue is the mean piece value over the remaining pool, undiscounted.
func (d Distribution) ExpectedValue() float64 {
	if d.Total <= 0 {
		return 0
	}
	sum := 0.0
	for _, t := range board.AllPieceTypes {
		sum += float64(d.Remaining[t]) * float64(t.BaseValue())
	}
	return sum / float64(d.Total)
}
